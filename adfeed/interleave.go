package adfeed

// Slot is a sponsored-content placeholder inserted between content items.
type Slot struct {
	// Key is the stable identity of this slot: the config's AdIndex base
	// plus the index of the item the slot follows. Re-rendering the same
	// list with the same base yields the same keys.
	Key int `json:"key"`

	// UnitID is the opaque ad-network placement identifier.
	UnitID string `json:"unit_id"`
}

// Entry is one element of a render plan: either a rendered content item or
// an ad slot, never both. Ad is nil for content entries.
type Entry[R any] struct {
	Item R     `json:"item,omitempty"`
	Ad   *Slot `json:"ad,omitempty"`
}

// IsAd reports whether the entry is a sponsored slot.
func (e Entry[R]) IsAd() bool { return e.Ad != nil }

// Interleave renders items in order and inserts ad slots according to cfg.
//
// An ad slot follows item i (0-based) exactly when all of the following hold:
// insertion is active, item i+1 exists, the item is past the skip zone, and
// the position counted from the end of the skip zone lands on an interval
// boundary. An empty input produces an empty plan.
func Interleave[T, R any](items []T, render func(item T, index int) R, cfg InsertionConfig) []Entry[R] {
	plan := make([]Entry[R], 0, len(items))
	for i, item := range items {
		plan = append(plan, Entry[R]{Item: render(item, i)})
		if cfg.slotAfter(i, len(items)) {
			plan = append(plan, Entry[R]{Ad: &Slot{Key: cfg.AdIndex + i, UnitID: cfg.AdUnitID}})
		}
	}
	return plan
}

// SlotPositions returns the item indexes that are followed by an ad slot,
// without rendering anything. Useful for planning and tests.
func SlotPositions(total int, cfg InsertionConfig) []int {
	var positions []int
	for i := 0; i < total; i++ {
		if cfg.slotAfter(i, total) {
			positions = append(positions, i)
		}
	}
	return positions
}
