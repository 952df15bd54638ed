// Package filmlab provides the HTTP client for the Filmlab Online
// rendering API.
//
// # Overview
//
// This package implements the full client side of the Filmlab Online
// develop pipeline: preset retrieval, user authentication, the three-phase
// image upload handshake, preview generation, and render/export calls. It
// mirrors what the official web client sends so the API accepts requests
// from this tool.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client, session cookies, and all API operations
//   - types.go: Request/response structures mirroring the API schema
//   - quality.go: Image quality levels and their export format mapping
//
// # Upload Handshake
//
// Uploading an image takes three phases:
//
//   - POST /upload/prepare with the file's mimetype and size. The server
//     answers with either a single presigned URL or, for large files, a
//     multipart plan (uploadId, chunk size, one URL per part).
//   - PUT the file bytes to the presigned URL(s). Multipart uploads
//     collect the ETag response header of every part, in order.
//   - POST /upload/finish with the image id, plus the uploadId and ETags
//     for multipart uploads.
//
// A multipart plan whose chunk count does not cover the file size is an
// error; the client never silently truncates an upload.
//
// # Sessions
//
// Authentication posts email and password and reads the access-token and
// auth cookies from the Set-Cookie response headers. Both cookies live in
// the client's cookie jar and in the disk cache, so later runs restore the
// session without logging in again. IsAuthorized checks for a non-empty
// access-token cookie; authorized sessions may export in the original
// format, anonymous sessions only render JPEG previews.
//
// # Render State
//
// Render and export requests carry a state map: the preset identifier,
// the five always-numeric adjustments, vignette size and feather, and any
// effect that is not Off. Off effects are omitted from the state entirely
// so the preset's own baseline applies; they are never sent as zero.
//
// # Caching
//
// The preset list and the session cookies persist through a diskcache
// Store. Presets cache for a day; cached and freshly fetched lists share
// the same case-insensitive caption order.
//
// # Error Handling
//
// Network, HTTP status, and decode failures return wrapped errors.
// Validation failures on upload (missing file, unsupported format, a
// prepare response without success) log the problem and return an empty
// image id without an error, so a batch run continues with its remaining
// files.
package filmlab
