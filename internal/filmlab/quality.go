package filmlab

import (
	"fmt"
	"strings"
)

// ImageSize selects the preview resolution.
type ImageSize string

// Preview sizes accepted by the previews endpoint.
const (
	SizeSmall ImageSize = "small"
	SizeLarge ImageSize = "large"
)

// ExportFormat is the wire-level format selector for export calls.
//
//	web:  optimised for web, resized to 2160x2160, JPEG 80%
//	jpeg: best quality, max resolution 3024x3024, JPEG 100%
//	tiff: lossless, max resolution 3024x3024, TIFF 16 bit
type ExportFormat string

const (
	FormatWeb  ExportFormat = "web"
	FormatJPEG ExportFormat = "jpeg"
	FormatTIFF ExportFormat = "tiff"
)

// ImageQuality is the user-facing quality label, mapped 1:1 onto an export
// format.
type ImageQuality string

const (
	QualityLow    ImageQuality = "low"    // FormatWeb
	QualityMedium ImageQuality = "medium" // FormatJPEG
	QualityHigh   ImageQuality = "high"   // FormatTIFF
)

// UnknownQualityError reports a quality label outside the low/medium/high
// set. The offending input is carried verbatim.
type UnknownQualityError struct {
	Label string
}

func (e *UnknownQualityError) Error() string {
	return fmt.Sprintf("unknown quality level: %s", e.Label)
}

// QualityFromString parses a quality label, ignoring case and surrounding
// whitespace.
func QualityFromString(label string) (ImageQuality, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	default:
		return "", &UnknownQualityError{Label: label}
	}
}

// Format returns the export format a quality tier maps to.
func (q ImageQuality) Format() ExportFormat {
	switch q {
	case QualityMedium:
		return FormatJPEG
	case QualityHigh:
		return FormatTIFF
	default:
		return FormatWeb
	}
}

// QualityFromFormat returns the quality tier an export format maps to.
func QualityFromFormat(format ExportFormat) (ImageQuality, error) {
	switch format {
	case FormatWeb:
		return QualityLow, nil
	case FormatJPEG:
		return QualityMedium, nil
	case FormatTIFF:
		return QualityHigh, nil
	default:
		return "", &UnknownQualityError{Label: string(format)}
	}
}

// Title renders the quality label capitalised for user-facing logs.
func (q ImageQuality) Title() string {
	if q == "" {
		return ""
	}
	return strings.ToUpper(string(q[:1])) + string(q[1:])
}
