package remoteconfig

import (
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/chaosregistry/platform/adfeed"
)

// Schema is the typed view of the remote configuration. Consumers receive
// it fully coerced and validated; no field requires re-interpretation.
type Schema struct {
	AdInsertionEnabled   bool   `json:"ad_insertion_enabled"`
	AdInsertionInterval  int    `json:"ad_insertion_interval" validate:"gt=0"`
	AdInsertionSkipFirst int    `json:"ad_insertion_skip_first" validate:"gte=0"`
	AdUnitID             string `json:"admob_native_ad_unit_id"`
}

// Defaults returns the schema used when keys are absent or unusable.
func Defaults() Schema {
	return Schema{
		AdInsertionEnabled:   true,
		AdInsertionInterval:  10,
		AdInsertionSkipFirst: 3,
		AdUnitID:             "",
	}
}

// InsertionConfig projects the schema into an adfeed config with the given
// slot-key base.
func (s Schema) InsertionConfig(adIndex int) adfeed.InsertionConfig {
	return adfeed.InsertionConfig{
		Enabled:   s.AdInsertionEnabled,
		Interval:  s.AdInsertionInterval,
		SkipFirst: s.AdInsertionSkipFirst,
		AdIndex:   adIndex,
		AdUnitID:  s.AdUnitID,
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Parse coerces raw string values into a Schema. Coercion happens here and
// nowhere else: missing keys, unparseable values, and values that fail
// validation all fall back to their defaults field by field, because a
// remote-config typo must degrade gracefully, never crash rendering.
func Parse(raw map[string]string) Schema {
	s := Defaults()

	if v, ok := raw[KeyAdInsertionEnabled]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			s.AdInsertionEnabled = parsed
		}
	}
	if v, ok := raw[KeyAdInsertionInterval]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			s.AdInsertionInterval = parsed
		}
	}
	if v, ok := raw[KeyAdInsertionSkipFirst]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			s.AdInsertionSkipFirst = parsed
		}
	}
	if v, ok := raw[KeyAdUnitID]; ok && v != "" {
		s.AdUnitID = v
	}

	return sanitize(s)
}

// sanitize repairs any field that fails struct validation. A non-positive
// interval disables insertion outright — the feature degrades to "no ads"
// instead of guessing a cadence the operator never configured. A negative
// skip clamps to zero.
func sanitize(s Schema) Schema {
	err := getValidator().Struct(s)
	if err == nil {
		return s
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Defaults()
	}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "AdInsertionInterval":
			s.AdInsertionEnabled = false
			s.AdInsertionInterval = Defaults().AdInsertionInterval
		case "AdInsertionSkipFirst":
			s.AdInsertionSkipFirst = 0
		}
	}
	return s
}
