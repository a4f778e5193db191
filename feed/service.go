package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/chaosregistry/platform/adfeed"
	"github.com/chaosregistry/platform/logger"
	"github.com/chaosregistry/platform/remoteconfig"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RenderedTopic is the wire form of a topic in a feed page.
type RenderedTopic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	VoteCount   int       `json:"vote_count"`
	MemberCount int       `json:"member_count"`
	Promoted    bool      `json:"promoted,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Position    int       `json:"position"`
}

// Page is the render plan for one feed page: promoted topics first, then
// regular topics with ad slots interleaved.
type Page struct {
	Tab      Tab                           `json:"tab"`
	Page     int                           `json:"page"`
	PageSize int                           `json:"page_size"`
	Total    int                           `json:"total"`
	Promoted []RenderedTopic               `json:"promoted,omitempty"`
	Entries  []adfeed.Entry[RenderedTopic] `json:"entries"`
	AdSlots  int                           `json:"ad_slots"`
}

// Service assembles feed pages from the topic store and the current remote
// configuration snapshot.
type Service struct {
	store  Store
	remote *remoteconfig.Store
	log    *logger.Logger
}

// NewService creates the feed service.
func NewService(store Store, remote *remoteconfig.Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		remote: remote,
		log:    log.WithComponent("feed"),
	}
}

func render(t Topic, i int) RenderedTopic {
	return RenderedTopic{
		ID:          t.ID,
		Title:       t.Title,
		VoteCount:   t.VoteCount,
		MemberCount: t.MemberCount,
		Promoted:    t.Promoted,
		CreatedAt:   t.CreatedAt,
		Position:    i,
	}
}

// Page builds the render plan for one page of a tab. Promoted topics appear
// only on the first page and consume leading skip slots, and items shown on
// earlier pages consume skip slots the same way, so the ad cadence and the
// slot keys continue across page boundaries instead of restarting.
func (s *Service) Page(ctx context.Context, tab Tab, userID string, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize

	pinned, err := s.store.Promoted(ctx)
	if err != nil {
		return nil, fmt.Errorf("feed: promoted: %w", err)
	}

	// Promoted topics consume leading skip slots on every page's cadence;
	// items shown on earlier pages advance the cadence and the slot keys,
	// so paging never restarts the interval or reuses a key.
	cfg := s.remote.Snapshot(ctx).
		InsertionConfig(tab.AdIndexBase()).
		WithPromoted(len(pinned)).
		WithShown(offset)

	var promoted []RenderedTopic
	if page == 1 {
		for i, t := range pinned {
			promoted = append(promoted, render(t, i))
		}
	}

	topics, total, err := s.store.List(ctx, tab, userID, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("feed: list %s: %w", tab, err)
	}

	entries := adfeed.Interleave(topics, render, cfg)
	adSlots := 0
	for _, e := range entries {
		if e.IsAd() {
			adSlots++
		}
	}

	return &Page{
		Tab:      tab,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Promoted: promoted,
		Entries:  entries,
		AdSlots:  adSlots,
	}, nil
}
