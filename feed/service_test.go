package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chaosregistry/platform/logger"
	"github.com/chaosregistry/platform/remoteconfig"
)

func seedTopics(n int) []Topic {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	topics := make([]Topic, 0, n)
	for i := 0; i < n; i++ {
		topics = append(topics, Topic{
			ID:        fmt.Sprintf("t%d", i),
			Title:     fmt.Sprintf("Topic %d", i),
			VoteCount: n - i,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Members:   map[string]bool{"u1": i%2 == 0},
		})
	}
	return topics
}

func newTestService(t *testing.T, topics []Topic, source remoteconfig.StaticSource) *Service {
	t.Helper()
	store := NewMemoryStore(topics...)
	remote := remoteconfig.NewStore(source)
	return NewService(store, remote, logger.NewDefault("test"))
}

func slotKeys(p *Page) []int {
	var keys []int
	for _, e := range p.Entries {
		if e.IsAd() {
			keys = append(keys, e.Ad.Key)
		}
	}
	return keys
}

func TestPage_InterleavesAds(t *testing.T) {
	svc := newTestService(t, seedTopics(7), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionInterval:  "2",
		remoteconfig.KeyAdInsertionSkipFirst: "0",
		remoteconfig.KeyAdUnitID:             "unit-1",
	})

	page, err := svc.Page(context.Background(), TabHot, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	// 7 items, interval 2, no skip: slots after items 1, 3, 5.
	if page.AdSlots != 3 {
		t.Fatalf("AdSlots = %d, want 3", page.AdSlots)
	}
	if len(page.Entries) != 10 {
		t.Errorf("len(Entries) = %d, want 10", len(page.Entries))
	}
	for _, e := range page.Entries {
		if e.IsAd() && e.Ad.UnitID != "unit-1" {
			t.Errorf("slot unit = %q", e.Ad.UnitID)
		}
	}
}

func TestPage_TabsUseDisjointSlotKeys(t *testing.T) {
	source := remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionInterval:  "2",
		remoteconfig.KeyAdInsertionSkipFirst: "0",
	}
	svc := newTestService(t, seedTopics(6), source)

	hot, err := svc.Page(context.Background(), TabHot, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	latest, err := svc.Page(context.Background(), TabLatest, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	hotKeys := map[int]bool{}
	for _, k := range slotKeys(hot) {
		hotKeys[k] = true
	}
	for _, k := range slotKeys(latest) {
		if hotKeys[k] {
			t.Errorf("slot key %d appears in both hot and latest", k)
		}
	}
}

func TestPage_PromotedConsumesSkip(t *testing.T) {
	topics := seedTopics(6)
	topics = append(topics,
		Topic{ID: "p1", Title: "Pinned 1", Promoted: true},
		Topic{ID: "p2", Title: "Pinned 2", Promoted: true},
	)
	svc := newTestService(t, topics, remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionInterval:  "2",
		remoteconfig.KeyAdInsertionSkipFirst: "2",
	})

	page, err := svc.Page(context.Background(), TabHot, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	if len(page.Promoted) != 2 {
		t.Fatalf("Promoted = %d, want 2", len(page.Promoted))
	}
	// Two promoted items fully consume the skip of two, so the first slot
	// lands after item 1, as if there were no skip at all.
	if len(page.Entries) < 3 || !page.Entries[2].IsAd() {
		t.Error("expected the first ad slot directly after item index 1")
	}
}

func TestPage_CadenceContinuesAcrossPages(t *testing.T) {
	svc := newTestService(t, seedTopics(12), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionInterval:  "2",
		remoteconfig.KeyAdInsertionSkipFirst: "0",
	})

	seen := map[int]bool{}
	totalSlots := 0
	for page := 1; page <= 3; page++ {
		p, err := svc.Page(context.Background(), TabHot, "", page, 4)
		if err != nil {
			t.Fatal(err)
		}
		totalSlots += p.AdSlots
		for _, k := range slotKeys(p) {
			if seen[k] {
				t.Errorf("slot key %d reused on page %d", k, page)
			}
			seen[k] = true
			// Interval 2, no skip: every combined-list slot follows an
			// odd global index, so every key is odd regardless of page.
			if k%2 != 1 {
				t.Errorf("page %d slot key %d is not on the combined cadence", page, k)
			}
		}
	}
	if totalSlots == 0 {
		t.Fatal("expected ad slots across the paged tab")
	}
}

func TestPage_LaterPageCarriesMidListSlot(t *testing.T) {
	// Interval 3, skip 2 over 12 topics puts combined-list slots after
	// items 4, 7 and 10. Pages of 4 must surface the page-2 slot at key 4
	// and the page-3 slot at key 10; a per-page restart yields no ads at
	// all with this shape.
	svc := newTestService(t, seedTopics(12), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionInterval:  "3",
		remoteconfig.KeyAdInsertionSkipFirst: "2",
	})

	page2, err := svc.Page(context.Background(), TabHot, "", 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	page3, err := svc.Page(context.Background(), TabHot, "", 3, 4)
	if err != nil {
		t.Fatal(err)
	}

	if keys := slotKeys(page2); len(keys) != 1 || keys[0] != 4 {
		t.Errorf("page 2 slot keys = %v, want [4]", keys)
	}
	if keys := slotKeys(page3); len(keys) != 1 || keys[0] != 10 {
		t.Errorf("page 3 slot keys = %v, want [10]", keys)
	}
}

func TestPage_SecondPageHasNoPromoted(t *testing.T) {
	topics := seedTopics(6)
	topics = append(topics, Topic{ID: "p1", Title: "Pinned", Promoted: true})
	svc := newTestService(t, topics, remoteconfig.StaticSource{})

	page, err := svc.Page(context.Background(), TabHot, "", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Promoted) != 0 {
		t.Errorf("page 2 must not repeat promoted topics, got %d", len(page.Promoted))
	}
	if page.Total != 6 {
		t.Errorf("Total = %d, want 6 (promoted excluded)", page.Total)
	}
}

func TestPage_JoinedFiltersByMembership(t *testing.T) {
	svc := newTestService(t, seedTopics(6), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionEnabled: "false",
	})

	page, err := svc.Page(context.Background(), TabJoined, "u1", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Even-indexed seed topics have u1 as a member.
	if page.Total != 3 {
		t.Errorf("Total = %d, want 3", page.Total)
	}
	for _, e := range page.Entries {
		if e.IsAd() {
			t.Error("disabled insertion must produce no slots")
		}
	}
}

func TestPage_BadIntervalDegradesToNoAds(t *testing.T) {
	svc := newTestService(t, seedTopics(6), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionInterval: "0",
	})

	page, err := svc.Page(context.Background(), TabHot, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.AdSlots != 0 {
		t.Errorf("AdSlots = %d, want 0 for a non-positive interval", page.AdSlots)
	}
}

func TestPage_HotOrdersByVotes(t *testing.T) {
	svc := newTestService(t, seedTopics(4), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionEnabled: "false",
	})

	page, err := svc.Page(context.Background(), TabHot, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Entries[0].Item.ID != "t0" {
		t.Errorf("first hot topic = %q, want the highest-voted t0", page.Entries[0].Item.ID)
	}
}

func TestPage_LatestOrdersByCreation(t *testing.T) {
	svc := newTestService(t, seedTopics(4), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionEnabled: "false",
	})

	page, err := svc.Page(context.Background(), TabLatest, "", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Entries[0].Item.ID != "t3" {
		t.Errorf("first latest topic = %q, want the newest t3", page.Entries[0].Item.ID)
	}
}

func TestParseTab(t *testing.T) {
	for _, valid := range []string{"hot", "latest", "joined"} {
		if _, err := ParseTab(valid); err != nil {
			t.Errorf("ParseTab(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseTab("trending"); err == nil {
		t.Error("unknown tab must be rejected")
	}
}
