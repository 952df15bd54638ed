package filmlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/darkroom-dev/darkroom/internal/diskcache"
	"github.com/darkroom-dev/darkroom/internal/httplog"
	"github.com/darkroom-dev/darkroom/internal/imagefile"
	"github.com/darkroom-dev/darkroom/internal/settings"
)

// Client talks to the Filmlab Online API. It owns the HTTP session and
// borrows the cache store it was constructed with.
type Client struct {
	baseURL *url.URL
	origin  string
	http    *http.Client
	cache   diskcache.Store
	logger  *slog.Logger
}

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://online.filmlab.app/api/v1"

	userAgent      = "Mozilla/5.0"
	acceptLanguage = "en-US,en;q=0.5"
	requestTimeout = 5 * time.Minute

	accessTokenCookie = "access-token"
	authCookie        = "auth"
)

// NewClient builds a Client against baseURL, restoring any cached auth
// cookies into the session. An empty baseURL uses the production endpoint.
func NewClient(baseURL string, cache diskcache.Store, logger *slog.Logger) (*Client, error) {
	parsed, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: parsed,
		origin:  (&url.URL{Scheme: parsed.Scheme, Host: parsed.Host}).String(),
		http: &http.Client{
			Jar:       jar,
			Transport: httplog.NewTransport(nil, logger),
			Timeout:   requestTimeout,
		},
		cache:  cache,
		logger: logger,
	}
	c.SetSessionCookies(authDataFromCache(cache))
	return c, nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q has no scheme or host", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// authDataFromCache collects previously persisted auth cookies.
func authDataFromCache(cache diskcache.Store) map[string]string {
	cookies := map[string]string{}
	for _, key := range []string{diskcache.KeyAccessToken, diskcache.KeyAuth} {
		raw, ok := cache.Get(key)
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil || value == "" {
			continue
		}
		cookies[key] = value
	}
	return cookies
}

// SetSessionCookies installs the given cookies into the session's persistent
// cookie jar.
func (c *Client) SetSessionCookies(cookies map[string]string) {
	if len(cookies) == 0 {
		return
	}
	set := make([]*http.Cookie, 0, len(cookies))
	for name, value := range cookies {
		set = append(set, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	c.http.Jar.SetCookies(c.baseURL, set)
}

// IsAuthorized reports whether the session carries a non-empty access-token
// cookie. Authorized sessions may export; anonymous sessions only render.
func (c *Client) IsAuthorized() bool {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == accessTokenCookie && cookie.Value != "" {
			return true
		}
	}
	return false
}

// Login authenticates with the given credentials and persists the auth
// cookies from the response into the cache and the session. It returns false
// without an error when the server rejects the credentials or the expected
// Set-Cookie header is absent.
func (c *Client) Login(ctx context.Context, email, password string) (bool, error) {
	// A failed login must not leave stale auth state behind.
	_ = c.cache.Delete(diskcache.KeyAccessToken)
	_ = c.cache.Delete(diskcache.KeyAuth)

	c.logger.Debug("logging in and requesting access token and auth data")

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return false, fmt.Errorf("marshal login request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("auth/login-with-email-and-password"), bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create login request: %w", err)
	}
	c.applyBaseHeaders(req)
	c.applySecurityHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	req.Header.Set("Priority", "u=0")
	req.Header.Set("TE", "trailers")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result successResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode login response: %w", err)
	}
	if !result.Success {
		return false, nil
	}

	setCookie := strings.Join(resp.Header.Values("Set-Cookie"), ", ")
	if setCookie == "" {
		return false, nil
	}
	authCookies := extractAuthCookies(setCookie)
	for name, value := range authCookies {
		encoded, err := json.Marshal(value)
		if err != nil {
			continue
		}
		_ = c.cache.Set(name, encoded, 0)
	}
	c.SetSessionCookies(authCookies)
	return true, nil
}

// extractAuthCookies scans the joined Set-Cookie header text for the
// access-token and auth values. Cookie attributes between the two values
// mean the auth cookie appears behind a "Secure, " marker once the headers
// are joined, so that literal prefix is matched.
func extractAuthCookies(setCookie string) map[string]string {
	cookies := map[string]string{}
	for _, segment := range strings.Split(setCookie, "; ") {
		switch {
		case strings.HasPrefix(segment, accessTokenCookie+"="):
			cookies[accessTokenCookie] = strings.TrimPrefix(segment, accessTokenCookie+"=")
		case strings.HasPrefix(segment, "Secure, "+authCookie+"="):
			cookies[authCookie] = strings.TrimPrefix(segment, "Secure, "+authCookie+"=")
		}
	}
	return cookies
}

// AvailablePresets returns the preset catalogue sorted by lower-cased
// caption. A valid cached copy is served without touching the network;
// otherwise the list is fetched, sorted, and cached for a day.
func (c *Client) AvailablePresets(ctx context.Context) ([]Preset, error) {
	c.logger.Debug("getting available presets")

	if raw, ok := c.cache.Get(diskcache.KeyPresets); ok {
		var cached []Preset
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("presets"), nil)
	if err != nil {
		return nil, fmt.Errorf("create presets request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute presets request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var payload presetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode presets response: %w", err)
	}

	presets := payload.Presets
	// Lower-cased captions keep manufacturers with shouting names (for
	// example "AGFA Chrome RSX II 200" vs "Agfa Agfacolor XRS 200") grouped
	// together. The cached copy stores this order, so cache hits and fresh
	// fetches agree.
	sort.SliceStable(presets, func(i, j int) bool {
		return strings.ToLower(presets[i].Caption) < strings.ToLower(presets[j].Caption)
	})

	if encoded, err := json.Marshal(presets); err == nil {
		_ = c.cache.Set(diskcache.KeyPresets, encoded, diskcache.DefaultTTL)
	}
	return presets, nil
}

// UploadImage uploads the file at path through the prepare/transfer/finish
// handshake and returns the image id. Validation failures and a prepare
// response without success return an empty id and no error.
func (c *Client) UploadImage(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.logger.Error("file does not exist", "path", path)
		return "", nil
	}
	if !imagefile.IsSupported(path) {
		c.logger.Error("file is not a supported image format", "path", path)
		return "", nil
	}

	c.logger.Debug("uploading image", "path", path)

	prepared, err := c.uploadPrepare(ctx, path, info.Size())
	if err != nil {
		return "", err
	}
	if !prepared.Success {
		return "", nil
	}

	if prepared.IsMultipart {
		etags, err := c.putMultipart(ctx, prepared.URLs, path, prepared.ChunkSize)
		if err != nil {
			return "", err
		}
		finish := uploadFinishRequest{
			ImageID:  prepared.ImageID,
			UploadID: prepared.UploadID,
			ETags:    etags,
			Filename: filepath.Base(path),
		}
		if err := c.uploadFinish(ctx, finish); err != nil {
			return "", err
		}
	} else {
		if err := c.putWhole(ctx, prepared.URL, path); err != nil {
			return "", err
		}
		finish := uploadFinishRequest{ImageID: prepared.ImageID, Filename: filepath.Base(path)}
		if err := c.uploadFinish(ctx, finish); err != nil {
			return "", err
		}
	}

	c.logger.Debug("image uploaded", "imageId", prepared.ImageID)
	return prepared.ImageID, nil
}

// uploadPrepare declares the file's mime type and size (step 1/3).
func (c *Client) uploadPrepare(ctx context.Context, path string, size int64) (uploadPrepareResponse, error) {
	var prepared uploadPrepareResponse
	payload := uploadPrepareRequest{MimeType: imagefile.GuessMimeType(path), Size: size}
	if err := c.postJSON(ctx, "upload/prepare", payload, &prepared, nil); err != nil {
		return uploadPrepareResponse{}, err
	}
	return prepared, nil
}

// putWhole sends the entire file body to the presigned URL (step 2/3,
// regular mode).
func (c *Client) putWhole(ctx context.Context, putURL, path string) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image file: %w", err)
	}
	_, err = c.put(ctx, putURL, path, fileBytes)
	return err
}

// putMultipart streams the file in server-declared chunks to the presigned
// URLs in order, collecting the ETag of every part (step 2/3, multipart
// mode). A file with bytes left after the last URL fails outright instead of
// being silently truncated.
func (c *Client) putMultipart(ctx context.Context, urls []string, path string, chunkSize int64) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("multipart upload: invalid chunk size %d", chunkSize)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	defer func() { _ = file.Close() }()

	etags := make([]string, 0, len(urls))
	buf := make([]byte, chunkSize)
	for _, putURL := range urls {
		n, err := io.ReadFull(file, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, fmt.Errorf("read image chunk: %w", err)
		}
		if n == 0 {
			break
		}
		etag, err := c.put(ctx, putURL, path, buf[:n])
		if err != nil {
			return nil, err
		}
		etags = append(etags, etag)
	}

	var probe [1]byte
	if n, _ := file.Read(probe[:]); n > 0 {
		return nil, fmt.Errorf("multipart upload: file %s exceeds %d parts of %d bytes", path, len(urls), chunkSize)
	}
	return etags, nil
}

func (c *Client) put(ctx context.Context, putURL, path string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, putURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create put request: %w", err)
	}
	c.applyBaseHeaders(req)
	c.applySecurityHeaders(req)
	req.Header.Set("Content-Type", imagefile.GuessMimeType(path))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute put request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("put to presigned url returned status %d", resp.StatusCode)
	}
	return resp.Header.Get("ETag"), nil
}

// uploadFinish notifies the server the transfer completed (step 3/3).
func (c *Client) uploadFinish(ctx context.Context, finish uploadFinishRequest) error {
	return c.postJSON(ctx, "upload/finish", finish, nil, map[string]string{"TE": "trailers"})
}

// ImagePreviews requests one preview per preset for the uploaded image and
// returns a caption-to-URL mapping built positionally from the response. An
// answer without the images field yields an empty map.
func (c *Client) ImagePreviews(ctx context.Context, imageID string, size ImageSize, presets []Preset) (map[string]string, error) {
	payload := previewsRequest{ImageID: imageID, Size: string(size), States: presets}
	var result previewsResponse
	if err := c.postJSON(ctx, "image/previews/"+imageID, payload, &result, map[string]string{"TE": "trailers"}); err != nil {
		return nil, err
	}

	links := map[string]string{}
	for i, link := range result.Images {
		if i >= len(presets) {
			break
		}
		links[presets[i].Caption] = link
	}
	return links, nil
}

// RenderImage renders the uploaded image with the preset and settings,
// returning the result URL. Off settings fields are omitted from the request
// state so the preset's baselines apply. An empty URL means the server did
// not return one.
func (c *Client) RenderImage(ctx context.Context, imageID string, preset Preset, s settings.Settings) (string, error) {
	payload := renderRequest{ImageID: imageID, State: renderState(preset, s)}
	var result renderResponse
	if err := c.postJSON(ctx, "image/render/"+imageID, payload, &result, nil); err != nil {
		return "", err
	}
	return result.URL, nil
}

// ExportImage renders the uploaded image for export in the given format.
// Export requires an authorized session; anonymous flows use RenderImage.
func (c *Client) ExportImage(ctx context.Context, imageID string, preset Preset, format ExportFormat, s settings.Settings) (Export, error) {
	payload := exportRequest{Format: string(format), ImageID: imageID, State: renderState(preset, s)}
	var result exportResponse
	if err := c.postJSON(ctx, "image/export/"+imageID, payload, &result, nil); err != nil {
		return Export{}, err
	}
	return Export{URL: result.URL, Filename: result.Filename}, nil
}

// postJSON sends payload to the API path and decodes the JSON response into
// dest when dest is non-nil. Malformed response bodies surface as decode
// errors.
func (c *Client) postJSON(ctx context.Context, path string, payload, dest any, extraHeaders map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	c.applyBaseHeaders(req)
	c.applySecurityHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	for name, value := range extraHeaders {
		req.Header.Set(name, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute %s request: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + "/" + path
}

func (c *Client) applyBaseHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Referer", c.origin)
	req.Header.Set("Origin", c.origin)
}

// applySecurityHeaders sets the privacy and fetch-metadata headers the web
// client sends.
func (c *Client) applySecurityHeaders(req *http.Request) {
	req.Header.Set("DNT", "1")
	req.Header.Set("Sec-GPC", "1")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
}
