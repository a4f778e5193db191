package feed

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "github.com/chaosregistry/platform/errors"
)

// Tab identifies one of the feed tabs.
type Tab string

const (
	TabHot    Tab = "hot"
	TabLatest Tab = "latest"
	TabJoined Tab = "joined"
)

// adIndexSpan spaces tab slot-key bases far enough apart that no realistic
// page of one tab overlaps another tab's key range.
const adIndexSpan = 10000

// ParseTab validates a tab name from the request path.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabHot, TabLatest, TabJoined:
		return Tab(s), nil
	default:
		return "", apperrors.InvalidInput("tab", "must be one of hot, latest, joined")
	}
}

// AdIndexBase returns the slot-key base for the tab.
func (t Tab) AdIndexBase() int {
	switch t {
	case TabHot:
		return 0
	case TabLatest:
		return adIndexSpan
	case TabJoined:
		return 2 * adIndexSpan
	default:
		return 0
	}
}

// Topic is a discussion topic as stored.
type Topic struct {
	ID          string
	Title       string
	AuthorID    string
	VoteCount   int
	MemberCount int
	Promoted    bool
	CreatedAt   time.Time
	Members     map[string]bool
}

// Store supplies topics for feed pages.
type Store interface {
	// List returns one page of topics for a tab plus the total count.
	// userID scopes the joined tab and is ignored elsewhere.
	List(ctx context.Context, tab Tab, userID string, offset, limit int) ([]Topic, int, error)
	// Promoted returns the pinned topics shown ahead of the first page.
	Promoted(ctx context.Context) ([]Topic, error)
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu     sync.RWMutex
	topics []Topic
}

// NewMemoryStore creates a store seeded with the given topics.
func NewMemoryStore(topics ...Topic) *MemoryStore {
	return &MemoryStore{topics: topics}
}

// Add appends a topic.
func (m *MemoryStore) Add(t Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics = append(m.topics, t)
}

func (m *MemoryStore) List(_ context.Context, tab Tab, userID string, offset, limit int) ([]Topic, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var pool []Topic
	for _, t := range m.topics {
		if t.Promoted {
			continue
		}
		if tab == TabJoined && !t.Members[userID] {
			continue
		}
		pool = append(pool, t)
	}

	switch tab {
	case TabHot:
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].VoteCount > pool[j].VoteCount })
	default:
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].CreatedAt.After(pool[j].CreatedAt) })
	}

	total := len(pool)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return pool[offset:end], total, nil
}

func (m *MemoryStore) Promoted(_ context.Context) ([]Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var promoted []Topic
	for _, t := range m.topics {
		if t.Promoted {
			promoted = append(promoted, t)
		}
	}
	sort.SliceStable(promoted, func(i, j int) bool { return promoted[i].CreatedAt.After(promoted[j].CreatedAt) })
	return promoted, nil
}
