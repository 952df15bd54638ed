package settings

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// LoadFile reads a TOML settings file and applies its values on top of the
// defaults. A missing file is an error; an unparseable file degrades to the
// defaults. Malformed leaf values collapse to Off for effects and to zero
// for adjustments rather than failing the load.
func LoadFile(path string) (Settings, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read settings file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Default(), nil // Graceful degradation
	}

	s := Default()
	for key, value := range raw {
		switch key {
		case "exposure":
			s.Exposure = adjustment(value)
		case "contrast":
			s.Contrast = adjustment(value)
		case "temperature":
			s.Temperature = adjustment(value)
		case "tint":
			s.Tint = adjustment(value)
		case "color_boost":
			s.ColorBoost = adjustment(value)
		case "grain":
			s.Grain = FromValue(value)
		case "bloom":
			s.Bloom = FromValue(value)
		case "halation":
			s.Halation = FromValue(value)
		case "vignette_exposure":
			s.VignetteExposure = FromValue(value)
		case "vignette_size":
			if f, ok := FromValue(value).Float(); ok {
				s.VignetteSize = f
			}
		case "vignette_feather":
			if f, ok := FromValue(value).Float(); ok {
				s.VignetteFeather = f
			}
		}
	}
	return s, nil
}

// adjustment collapses malformed adjustment values to zero.
func adjustment(raw any) float64 {
	f, ok := FromValue(raw).Float()
	if !ok {
		return 0
	}
	return f
}
