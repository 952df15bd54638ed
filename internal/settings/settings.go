// Package settings models the adjustment and effect parameters applied to a
// film preset, including the Off state for effects that can be disabled.
package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is either a numeric setting or the Off state. Off means "do not send
// or override this field"; it is distinct from every number, including zero.
type Value struct {
	off bool
	num float64
}

// Off returns the disabled state.
func Off() Value {
	return Value{off: true}
}

// Num returns a numeric value.
func Num(f float64) Value {
	return Value{num: f}
}

// IsOff reports whether the value is the Off state.
func (v Value) IsOff() bool {
	return v.off
}

// Float returns the numeric value and whether one is present.
func (v Value) Float() (float64, bool) {
	if v.off {
		return 0, false
	}
	return v.num, true
}

// String renders "Off" or the shortest exact decimal form of the number.
func (v Value) String() string {
	if v.off {
		return "Off"
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// FromValue classifies a raw value from a settings file or similar loosely
// typed source. Nil, booleans, and non-numeric text yield Off; numbers and
// numeric text yield their float value. This is the single source of truth
// for "is this effect enabled".
func FromValue(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Off()
	case bool:
		return Off()
	case float64:
		return Num(t)
	case float32:
		return Num(float64(t))
	case int:
		return Num(float64(t))
	case int64:
		return Num(float64(t))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return Off()
		}
		return Num(f)
	default:
		return Off()
	}
}

// Settings holds the eleven tunable fields for a develop request. The five
// adjustments are always numeric; grain, bloom, halation, and vignette
// exposure may be Off, in which case the preset's own baseline applies.
type Settings struct {
	// Adjustments
	Exposure    float64
	Contrast    float64
	Temperature float64
	Tint        float64
	ColorBoost  float64
	// Effects
	Grain            Value
	Bloom            Value
	Halation         Value
	VignetteExposure Value
	VignetteSize     float64
	VignetteFeather  float64
}

const (
	defaultVignetteSize    = 55.0
	defaultVignetteFeather = 15.0
)

// Default returns the baseline settings: adjustments at zero, togglable
// effects Off, vignette size and feather at their documented defaults.
func Default() Settings {
	return Settings{
		Grain:            Off(),
		Bloom:            Off(),
		Halation:         Off(),
		VignetteExposure: Off(),
		VignetteSize:     defaultVignetteSize,
		VignetteFeather:  defaultVignetteFeather,
	}
}

// Overrides carries explicitly supplied field values, typically parsed from
// CLI flags. A nil field leaves the base value untouched. Effect overrides
// supplied this way are always numeric, never Off.
type Overrides struct {
	Exposure         *float64
	Contrast         *float64
	Temperature      *float64
	Tint             *float64
	ColorBoost       *float64
	Grain            *float64
	Bloom            *float64
	Halation         *float64
	VignetteExposure *float64
	VignetteSize     *float64
	VignetteFeather  *float64
}

// Apply returns a copy of s with every non-nil override applied.
func (s Settings) Apply(o Overrides) Settings {
	out := s
	if o.Exposure != nil {
		out.Exposure = *o.Exposure
	}
	if o.Contrast != nil {
		out.Contrast = *o.Contrast
	}
	if o.Temperature != nil {
		out.Temperature = *o.Temperature
	}
	if o.Tint != nil {
		out.Tint = *o.Tint
	}
	if o.ColorBoost != nil {
		out.ColorBoost = *o.ColorBoost
	}
	if o.Grain != nil {
		out.Grain = Num(*o.Grain)
	}
	if o.Bloom != nil {
		out.Bloom = Num(*o.Bloom)
	}
	if o.Halation != nil {
		out.Halation = Num(*o.Halation)
	}
	if o.VignetteExposure != nil {
		out.VignetteExposure = Num(*o.VignetteExposure)
	}
	if o.VignetteSize != nil {
		out.VignetteSize = *o.VignetteSize
	}
	if o.VignetteFeather != nil {
		out.VignetteFeather = *o.VignetteFeather
	}
	return out
}

// Equal compares all eleven fields value-wise. Off never equals a number.
func (s Settings) Equal(other Settings) bool {
	return s == other
}

// AdjustmentsString renders the five adjustments as quoted field:value pairs
// for logging.
func (s Settings) AdjustmentsString() string {
	return fmt.Sprintf(
		"Exposure: '%s', Contrast: '%s', Temperature: '%s', Tint: '%s', Color boost: '%s'",
		formatFloat(s.Exposure),
		formatFloat(s.Contrast),
		formatFloat(s.Temperature),
		formatFloat(s.Tint),
		formatFloat(s.ColorBoost),
	)
}

// EffectsString renders the six effects as quoted field:value pairs for
// logging. Disabled effects render as Off.
func (s Settings) EffectsString() string {
	return fmt.Sprintf(
		"Grain: '%s', Bloom: '%s', Halation: '%s', Vignette exposure: '%s', Vignette size: '%s', Vignette feather: '%s'",
		s.Grain, s.Bloom, s.Halation, s.VignetteExposure,
		formatFloat(s.VignetteSize),
		formatFloat(s.VignetteFeather),
	)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
