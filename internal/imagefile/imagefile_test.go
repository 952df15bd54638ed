package imagefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// minimal but sniffable headers
var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0}
)

func TestIsSupported_SniffsContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	png := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(png, pngHeader, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !IsSupported(png) {
		t.Fatalf("IsSupported(png) = false, want true")
	}

	// png bytes behind a misleading extension still pass on content
	disguised := filepath.Join(dir, "shot.bin")
	if err := os.WriteFile(disguised, jpegHeader, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !IsSupported(disguised) {
		t.Fatalf("IsSupported(jpeg bytes, .bin name) = false, want true")
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("plain text"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if IsSupported(text) {
		t.Fatalf("IsSupported(text file) = true, want false")
	}

	if IsSupported(filepath.Join(dir, "missing.png")) {
		t.Fatalf("IsSupported(missing file) = true, want false")
	}
}

func TestIsSupported_ExtensionFallbackForRawFormats(t *testing.T) {
	t.Parallel()

	// DNG content sniffs as TIFF-ish or generic; the extension fallback
	// must accept it regardless.
	dng := filepath.Join(t.TempDir(), "raw.dng")
	if err := os.WriteFile(dng, []byte{0x49, 0x49, 0x2a, 0x00, 0, 0, 0, 0}, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !IsSupported(dng) {
		t.Fatalf("IsSupported(dng) = false, want true")
	}
}

func TestGuessMimeType(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.jpeg": "image/jpeg",
		"a.tif":  "image/tiff",
		"a.dng":  "image/x-adobe-dng",
		"a.PNG":  "image/png",
	}
	for path, want := range cases {
		if got := GuessMimeType(path); got != want {
			t.Fatalf("GuessMimeType(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNameWithoutExtension(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/a/b/example.txt":   "example",
		"/a/b/archive.tar.gz": "archive.tar",
		"/a/b/.bashrc":       ".bashrc",
		"plain":              "plain",
	}
	for path, want := range cases {
		if got := NameWithoutExtension(path); got != want {
			t.Fatalf("NameWithoutExtension(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSafeJoin(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	joined, err := SafeJoin(base, "out", "img_Preset.jpeg")
	if err != nil {
		t.Fatalf("SafeJoin returned error: %v", err)
	}
	if !strings.HasPrefix(joined, base) {
		t.Fatalf("SafeJoin = %q, want under %q", joined, base)
	}

	if _, err := SafeJoin(base, "..", "escape.txt"); err == nil {
		t.Fatalf("SafeJoin allowed traversal outside base")
	}
}
