package adfeed

// InsertionConfig controls where ad slots are inserted into a content list.
// It is immutable per call and typically sourced from the remote
// configuration snapshot (see the remoteconfig package).
type InsertionConfig struct {
	// Enabled is the master switch. When false no slots are inserted,
	// regardless of the other fields.
	Enabled bool `json:"enabled"`

	// Interval is the spacing between ad slots, counted in content items
	// past the skip zone. Values <= 0 disable insertion entirely: a bad
	// remote-config value must degrade to "no ads", never crash rendering.
	Interval int `json:"interval"`

	// SkipFirst is the number of leading items shown before the first
	// possible slot. Negative values are treated as zero.
	SkipFirst int `json:"skip_first"`

	// AdIndex is the base offset for slot keys. Tabs rendered into a shared
	// tree use disjoint bases so their slot identities never collide.
	AdIndex int `json:"ad_index"`

	// AdUnitID is the opaque ad-network placement identifier, passed
	// through to slots uninterpreted.
	AdUnitID string `json:"ad_unit_id"`

	// Shown is the number of items of the same logical list already
	// rendered on earlier pages. It is derived state set via WithShown,
	// not remote configuration.
	Shown int `json:"-"`
}

// WithPromoted returns a config whose skip zone accounts for promoted items
// already shown ahead of the interleaved list. Showing k promoted items
// consumes k skip slots, so the insertion cadence continues across the
// promoted/regular boundary instead of restarting.
func (c InsertionConfig) WithPromoted(shown int) InsertionConfig {
	skip := c.skip() - shown
	if skip < 0 {
		skip = 0
	}
	c.SkipFirst = skip
	return c
}

// WithShown returns a config whose cadence and slot keys continue after n
// items rendered on earlier pages of the same list. Positions are computed
// against the combined list, so paging never restarts the interval and
// never reuses a slot key.
func (c InsertionConfig) WithShown(n int) InsertionConfig {
	if n < 0 {
		n = 0
	}
	c.AdIndex += n
	c.Shown += n
	return c
}

// active reports whether insertion can happen at all.
func (c InsertionConfig) active() bool {
	return c.Enabled && c.Interval > 0
}

func (c InsertionConfig) skip() int {
	if c.SkipFirst < 0 {
		return 0
	}
	return c.SkipFirst
}

// slotAfter reports whether an ad slot follows the item at index i in a
// list of the given total length. Positions count from the start of the
// combined list (Shown items ahead plus this page). A slot is never
// appended after the final item of the page.
func (c InsertionConfig) slotAfter(i, total int) bool {
	if !c.active() || i >= total-1 {
		return false
	}
	pos := (c.Shown + i + 1) - c.skip()
	return pos > 0 && pos%c.Interval == 0
}
