package filmlab

import (
	"github.com/darkroom-dev/darkroom/internal/settings"
)

// Preset is a server-defined film emulation profile with its baseline
// adjustment and effect values. Presets are read-only once fetched.
type Preset struct {
	Caption           string  `json:"caption"`
	Creator           string  `json:"creator"`
	Preset            string  `json:"preset"`
	Exposure          float64 `json:"exposure"`
	Contrast          float64 `json:"contrast"`
	Temperature       float64 `json:"temperature"`
	Tint              float64 `json:"tint"`
	ColorBoost        float64 `json:"color_boost"`
	IsBloomEnabled    bool    `json:"is_bloom_enabled"`
	Bloom             float64 `json:"bloom"`
	IsHalationEnabled bool    `json:"is_halation_enabled"`
	Halation          float64 `json:"halation"`
	IsGrainEnabled    bool    `json:"is_grain_enabled"`
	Grain             float64 `json:"grain"`
	IsVignetteEnabled bool    `json:"is_vignette_enabled"`
	VignetteExposure  float64 `json:"vignette_exposure"`
	VignetteSize      float64 `json:"vignette_size"`
	VignetteFeather   float64 `json:"vignette_feather"`
}

type presetsResponse struct {
	Presets []Preset `json:"presets"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type uploadPrepareRequest struct {
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
}

type uploadPrepareResponse struct {
	Success     bool     `json:"success"`
	ImageID     string   `json:"imageId"`
	URL         string   `json:"url"`
	IsMultipart bool     `json:"isMultipart"`
	ChunkSize   int64    `json:"chunkSize"`
	UploadID    string   `json:"uploadId"`
	URLs        []string `json:"urls"`
}

type uploadFinishRequest struct {
	ImageID  string   `json:"imageId"`
	UploadID string   `json:"uploadId,omitempty"`
	ETags    []string `json:"etags,omitempty"`
	Filename string   `json:"filename"`
}

type previewsRequest struct {
	ImageID string   `json:"imageId"`
	Size    string   `json:"size"`
	States  []Preset `json:"states"`
}

type previewsResponse struct {
	Images []string `json:"images"`
}

type renderRequest struct {
	ImageID string         `json:"imageId"`
	State   map[string]any `json:"state"`
}

type renderResponse struct {
	URL string `json:"url"`
}

type exportRequest struct {
	Format  string         `json:"format"`
	ImageID string         `json:"imageId"`
	State   map[string]any `json:"state"`
}

type exportResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Export carries the result of an export call. Either field may be empty
// when the server omits it.
type Export struct {
	URL      string
	Filename string
}

// renderState builds the request state for render and export calls: the
// preset identifier plus every settings field that is not Off. Off fields
// are omitted entirely, never sent as a literal value.
func renderState(preset Preset, s settings.Settings) map[string]any {
	state := map[string]any{
		"preset":           preset.Preset,
		"exposure":         s.Exposure,
		"contrast":         s.Contrast,
		"temperature":      s.Temperature,
		"tint":             s.Tint,
		"color_boost":      s.ColorBoost,
		"vignette_size":    s.VignetteSize,
		"vignette_feather": s.VignetteFeather,
	}
	effects := map[string]settings.Value{
		"grain":             s.Grain,
		"bloom":             s.Bloom,
		"halation":          s.Halation,
		"vignette_exposure": s.VignetteExposure,
	}
	for key, value := range effects {
		if f, ok := value.Float(); ok {
			state[key] = f
		}
	}
	return state
}
