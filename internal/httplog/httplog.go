// Package httplog wraps an http.RoundTripper so every exchanged request and
// response is dumped at debug level, with large or binary bodies redacted
// from the transcript.
package httplog

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strconv"
	"strings"
)

// BodyPlaceholder replaces redacted body text in the logged transcript.
const BodyPlaceholder = "<body removed: binary content>"

// maxLoggedBodySize is the declared length above which a body counts as too
// large to log.
const maxLoggedBodySize = 100_000

// Transport dumps every request/response pair through the logger before
// handing the response back untouched. Dump failures never fail the call.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewTransport wraps base (nil means http.DefaultTransport) with transcript
// logging against logger (nil means slog.Default).
func NewTransport(base http.RoundTripper, logger *slog.Logger) *Transport {
	return &Transport{Base: base, Logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqDump, reqErr := httputil.DumpRequestOut(req, true)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		t.log(transcript(reqDump, nil, redactRequest(req), false))
		return resp, err
	}

	respDump, respErr := httputil.DumpResponse(resp, true)
	if reqErr != nil || respErr != nil {
		// Body could not be captured; log what we have rather than failing.
		t.log(transcript(reqDump, respDump, false, false))
		return resp, nil
	}

	t.log(transcript(reqDump, respDump, redactRequest(req), redactResponse(resp)))
	return resp, nil
}

func (t *Transport) log(text string) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug(text)
}

// isLargeContent reports whether the declared content length exceeds the
// logging threshold. A missing or non-numeric declaration is not large.
func isLargeContent(contentLength string) bool {
	n, err := strconv.ParseInt(strings.TrimSpace(contentLength), 10, 64)
	if err != nil {
		return false
	}
	return n > maxLoggedBodySize
}

// isBinaryContent reports whether the content type names a media or opaque
// byte stream.
func isBinaryContent(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, marker := range []string{"image", "video", "audio", "application/octet-stream"} {
		if strings.Contains(ct, marker) {
			return true
		}
	}
	return false
}

func shouldReplaceBody(contentLength, contentType string) bool {
	return isLargeContent(contentLength) || isBinaryContent(contentType)
}

func redactRequest(req *http.Request) bool {
	length := req.Header.Get("Content-Length")
	if length == "" && req.ContentLength > 0 {
		length = strconv.FormatInt(req.ContentLength, 10)
	}
	return req.Body != nil && shouldReplaceBody(length, req.Header.Get("Content-Type"))
}

func redactResponse(resp *http.Response) bool {
	return shouldReplaceBody(resp.Header.Get("Content-Length"), resp.Header.Get("Content-Type"))
}

// transcript renders the request dump prefixed with "> " and the response
// dump prefixed with "< ", applying the redaction decisions.
func transcript(reqDump, respDump []byte, redactReq, redactResp bool) string {
	var b strings.Builder
	writeDump(&b, string(reqDump), "> ", redactReq)
	if respDump != nil {
		writeDump(&b, string(respDump), "< ", redactResp)
	}
	return strings.TrimRight(b.String(), "\n")
}

// writeDump writes one direction of the exchange. When redacted, everything
// after the header/body separator is replaced with the placeholder and the
// headers are preserved.
func writeDump(b *strings.Builder, dump, prefix string, redact bool) {
	headers, body, hasBody := strings.Cut(dump, "\r\n\r\n")
	if !hasBody {
		headers, body, hasBody = strings.Cut(dump, "\n\n")
	}
	if redact && hasBody && strings.TrimSpace(body) != "" {
		body = BodyPlaceholder
	}
	for _, line := range strings.Split(strings.TrimRight(headers, "\r\n"), "\n") {
		b.WriteString(prefix)
		b.WriteString(strings.TrimRight(line, "\r"))
		b.WriteString("\n")
	}
	b.WriteString(prefix)
	b.WriteString("\n")
	if hasBody && strings.TrimSpace(body) != "" {
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			b.WriteString(prefix)
			b.WriteString(strings.TrimRight(line, "\r"))
			b.WriteString("\n")
		}
	}
}
