package remoteconfig

import "context"

// Recognized remote configuration keys.
const (
	// KeyAdInsertionEnabled is the master on/off switch for ad insertion.
	KeyAdInsertionEnabled = "ad_insertion_enabled"
	// KeyAdInsertionInterval is the spacing between ad slots.
	KeyAdInsertionInterval = "ad_insertion_interval"
	// KeyAdInsertionSkipFirst is the number of items shown before the first
	// possible ad.
	KeyAdInsertionSkipFirst = "ad_insertion_skip_first"
	// KeyAdUnitID is the opaque ad-network placement identifier.
	KeyAdUnitID = "admob_native_ad_unit_id"
)

// Source fetches raw key-value configuration from the external store.
// Implementations must be safe for concurrent use.
type Source interface {
	Fetch(ctx context.Context) (map[string]string, error)
}

// StaticSource is a fixed in-memory Source, used in tests and as the
// zero-infrastructure default.
type StaticSource map[string]string

// Fetch returns a copy of the static values.
func (s StaticSource) Fetch(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (map[string]string, error)

// Fetch calls the wrapped function.
func (f SourceFunc) Fetch(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}
