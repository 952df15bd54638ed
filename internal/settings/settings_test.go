package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromValue_Classification(t *testing.T) {
	t.Parallel()

	offInputs := []any{nil, true, false, "auto", "", "12px"}
	for _, raw := range offInputs {
		if v := FromValue(raw); !v.IsOff() {
			t.Fatalf("FromValue(%#v) = %v, want Off", raw, v)
		}
	}

	numeric := map[any]float64{
		1.5:     1.5,
		0.0:     0,
		-3:      -3,
		"2.25":  2.25,
		" 7 ":   7,
		int64(4): 4,
	}
	for raw, want := range numeric {
		f, ok := FromValue(raw).Float()
		if !ok || f != want {
			t.Fatalf("FromValue(%#v) = (%v, %v), want %v", raw, f, ok, want)
		}
	}
}

func TestOffIsNeverZero(t *testing.T) {
	t.Parallel()

	a := Default()
	b := Default()
	b.Grain = Num(0)
	if a.Equal(b) {
		t.Fatalf("grain Off compared equal to grain 0")
	}
	if Off() == Num(0) {
		t.Fatalf("Off() == Num(0)")
	}
}

func TestApply_EmptyOverridesKeepsDefaults(t *testing.T) {
	t.Parallel()

	if got := Default().Apply(Overrides{}); !got.Equal(Default()) {
		t.Fatalf("Apply(empty) = %+v, want defaults", got)
	}
}

func TestApply_OnlySuppliedFieldsChange(t *testing.T) {
	t.Parallel()

	contrast := 5.0
	grain := 1.5
	got := Default().Apply(Overrides{Contrast: &contrast, Grain: &grain})

	if got.Contrast != 5 {
		t.Fatalf("Contrast = %v, want 5", got.Contrast)
	}
	if f, ok := got.Grain.Float(); !ok || f != 1.5 {
		t.Fatalf("Grain = %v, want 1.5", got.Grain)
	}
	if !got.Bloom.IsOff() {
		t.Fatalf("Bloom = %v, want Off", got.Bloom)
	}
	if got.VignetteSize != 55 {
		t.Fatalf("VignetteSize = %v, want default 55", got.VignetteSize)
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	s := Default()
	wantAdjustments := "Exposure: '0', Contrast: '0', Temperature: '0', Tint: '0', Color boost: '0'"
	if got := s.AdjustmentsString(); got != wantAdjustments {
		t.Fatalf("AdjustmentsString() = %q, want %q", got, wantAdjustments)
	}

	s.Grain = Num(1.5)
	wantEffects := "Grain: '1.5', Bloom: 'Off', Halation: 'Off', Vignette exposure: 'Off', Vignette size: '55', Vignette feather: '15'"
	if got := s.EffectsString(); got != wantEffects {
		t.Fatalf("EffectsString() = %q, want %q", got, wantEffects)
	}
}

func TestLoadFile_MissingFileErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatalf("LoadFile on a missing file returned nil error")
	}
}

func TestLoadFile_MalformedFileDegradesToDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("not [valid toml ="), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if !got.Equal(Default()) {
		t.Fatalf("LoadFile(malformed) = %+v, want defaults", got)
	}
}

func TestLoadFile_AppliesValuesAndCollapsesInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(`
contrast = 5
exposure = "bad"
grain = 1.5
bloom = true
vignette_size = 40
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if got.Contrast != 5 {
		t.Fatalf("Contrast = %v, want 5", got.Contrast)
	}
	if got.Exposure != 0 {
		t.Fatalf("Exposure = %v, want collapse to 0", got.Exposure)
	}
	if f, ok := got.Grain.Float(); !ok || f != 1.5 {
		t.Fatalf("Grain = %v, want 1.5", got.Grain)
	}
	if !got.Bloom.IsOff() {
		t.Fatalf("Bloom = %v, want Off for boolean input", got.Bloom)
	}
	if got.VignetteSize != 40 {
		t.Fatalf("VignetteSize = %v, want 40", got.VignetteSize)
	}
}
