// Package imagefile validates upload candidates and provides filename
// helpers shared by the develop and contacts flows.
package imagefile

import (
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ValidTypes maps supported image format names to their mime types. The
// rendering service accepts exactly these.
var ValidTypes = map[string]string{
	"jpeg": "image/jpeg",
	"tiff": "image/tiff",
	"heif": "image/heif",
	"heic": "image/heic",
	"avif": "image/avif",
	"webp": "image/webp",
	"dng":  "image/x-adobe-dng",
	"png":  "image/png",
}

// IsSupported reports whether the file at path is one of the accepted image
// formats. The content is sniffed first; the extension-based mime registry
// is the fallback for raw formats the sniffer reports generically.
func IsSupported(path string) bool {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	for _, want := range ValidTypes {
		if detected.Is(want) {
			return true
		}
	}
	byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if byExt == "" {
		byExt = GuessMimeType(path)
	}
	for _, want := range ValidTypes {
		if byExt == want {
			return true
		}
	}
	return false
}

// GuessMimeType returns the mime type for path based on its extension,
// consulting ValidTypes for the raw formats the system registry misses.
func GuessMimeType(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "jpg":
		ext = "jpeg"
	case "tif":
		ext = "tiff"
	}
	if mt, ok := ValidTypes[ext]; ok {
		return mt
	}
	return mime.TypeByExtension("." + ext)
}

// NameWithoutExtension strips the final extension from the file name in
// path. Dotfiles are returned unchanged.
func NameWithoutExtension(path string) string {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return name
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext)
}

// Extension returns the file extension of name without the leading dot.
func Extension(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

// SafeJoin joins path components under base, rejecting traversal outside of
// it. Components are URL-unescaped before joining since preset captions may
// arrive percent-encoded.
func SafeJoin(base string, parts ...string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}
	joined := absBase
	for _, part := range parts {
		unescaped, err := url.PathUnescape(part)
		if err != nil {
			unescaped = part
		}
		joined = filepath.Join(joined, unescaped)
	}
	if joined != absBase && !strings.HasPrefix(joined, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes base %q", joined, absBase)
	}
	return joined, nil
}
