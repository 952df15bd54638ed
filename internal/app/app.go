// Package app wires configuration, cache, and the API client together and
// implements the user-facing develop, contacts, and preset flows.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/darkroom-dev/darkroom/internal/config"
	"github.com/darkroom-dev/darkroom/internal/diskcache"
	"github.com/darkroom-dev/darkroom/internal/filmlab"
	"github.com/darkroom-dev/darkroom/internal/imagefile"
	"github.com/darkroom-dev/darkroom/internal/settings"
	"github.com/darkroom-dev/darkroom/internal/ui"
)

// App bundles the collaborators every command needs.
type App struct {
	Client *filmlab.Client
	Cache  diskcache.Store
	Config config.Config
	Logger *slog.Logger
	Out    io.Writer

	downloader *http.Client
}

// New opens the cache and builds the API client from the given config.
func New(cfg config.Config, logger *slog.Logger, out io.Writer) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = os.Stdout
	}

	cache, err := diskcache.Open(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	client, err := filmlab.NewClient(cfg.APIBaseURL, cache, logger)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}

	return &App{
		Client:     client,
		Cache:      cache,
		Config:     cfg,
		Logger:     logger,
		Out:        out,
		downloader: &http.Client{Timeout: cfg.DownloadTimeout},
	}, nil
}

// ListPresets prints the available presets as an indexed list.
func (a *App) ListPresets(ctx context.Context) error {
	presets, err := a.Client.AvailablePresets(ctx)
	if err != nil {
		return fmt.Errorf("get available presets: %w", err)
	}
	fmt.Fprintln(a.Out, ui.Heading("The next presets are available:"))
	for i, preset := range presets {
		fmt.Fprintln(a.Out, ui.PresetLine(i+1, preset.Caption))
	}
	return nil
}

// Login authenticates and reports the outcome on the output writer.
func (a *App) Login(ctx context.Context, email, password string) error {
	ok, err := a.Client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !ok {
		return fmt.Errorf("user %q is not authorised, check email and password and try again", email)
	}
	fmt.Fprintf(a.Out, "User '%s' successfully authorized.\n", email)
	return nil
}

// Contacts uploads the image, requests small previews for every preset, and
// renders plus downloads each one for quick comparison.
func (a *App) Contacts(ctx context.Context, path string) error {
	a.Logger.Info("creating contacts", "path", path)

	presets, err := a.Client.AvailablePresets(ctx)
	if err != nil {
		return fmt.Errorf("get available presets: %w", err)
	}
	imageID, err := a.Client.UploadImage(ctx, path)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	if imageID == "" {
		a.Logger.Error("image was not uploaded, nothing to do", "path", path)
		return nil
	}

	previews, err := a.Client.ImagePreviews(ctx, imageID, filmlab.SizeSmall, presets)
	if err != nil {
		return fmt.Errorf("get image previews: %w", err)
	}

	fmt.Fprintln(a.Out, ui.Heading(fmt.Sprintf("Contacts for the image '%s':", path)))
	n := 0
	for _, preset := range presets {
		if _, ok := previews[preset.Caption]; !ok {
			continue
		}
		n++
		renderURL, err := a.Client.RenderImage(ctx, imageID, preset, settings.Default())
		if err != nil {
			return fmt.Errorf("render image with %q: %w", preset.Caption, err)
		}
		fmt.Fprintln(a.Out, ui.ResultLine(n, preset.Caption, renderURL))
		a.download(ctx, renderURL, path, preset.Caption, "jpeg")
	}
	return nil
}

// DevelopOptions configure a develop run.
type DevelopOptions struct {
	PresetNumber int // 1-based index into the sorted preset list
	Quality      string
	Settings     settings.Settings
}

// Develop processes a single file or every supported file of a directory
// with the chosen preset. Authorized sessions export in the requested
// quality; anonymous sessions fall back to a plain JPEG render.
func (a *App) Develop(ctx context.Context, path string, opts DevelopOptions) error {
	presets, err := a.Client.AvailablePresets(ctx)
	if err != nil {
		return fmt.Errorf("get available presets: %w", err)
	}
	if opts.PresetNumber < 1 || opts.PresetNumber > len(presets) {
		return fmt.Errorf("preset number %d out of range 1..%d", opts.PresetNumber, len(presets))
	}
	preset := presets[opts.PresetNumber-1]

	quality, err := filmlab.QualityFromString(opts.Quality)
	if err != nil {
		quality = filmlab.QualityLow
		a.Logger.Warn("unknown quality level, using default",
			"input", opts.Quality, "default", quality.Title())
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return a.processImage(ctx, path, preset, quality, opts)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		filePath := filepath.Join(path, name)
		if !imagefile.IsSupported(filePath) {
			continue
		}
		if err := a.processImage(ctx, filePath, preset, quality, opts); err != nil {
			return err
		}
	}
	return nil
}

// processImage runs a single image through upload and render or export.
func (a *App) processImage(ctx context.Context, path string, preset filmlab.Preset, quality filmlab.ImageQuality, opts DevelopOptions) error {
	imageID, err := a.Client.UploadImage(ctx, path)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	if imageID == "" {
		a.Logger.Error("image was not uploaded, skipping", "path", path)
		return nil
	}

	extension := "jpeg"
	var resultURL string
	if a.Client.IsAuthorized() {
		a.Logger.Info("developing image",
			"path", path,
			"preset", preset.Caption,
			"quality", quality.Title(),
			"adjustments", opts.Settings.AdjustmentsString(),
			"effects", opts.Settings.EffectsString())
		export, err := a.Client.ExportImage(ctx, imageID, preset, quality.Format(), opts.Settings)
		if err != nil {
			return fmt.Errorf("export image: %w", err)
		}
		resultURL = export.URL
		if ext := imagefile.Extension(export.Filename); ext != "" {
			extension = ext
		}
	} else {
		a.Logger.Info("developing image",
			"path", path,
			"preset", preset.Caption,
			"adjustments", opts.Settings.AdjustmentsString(),
			"effects", opts.Settings.EffectsString())
		resultURL, err = a.Client.RenderImage(ctx, imageID, preset, opts.Settings)
		if err != nil {
			return fmt.Errorf("render image: %w", err)
		}
	}

	fmt.Fprintln(a.Out, ui.ResultLine(opts.PresetNumber, preset.Caption, resultURL))
	a.download(ctx, resultURL, path, preset.Caption, extension)
	return nil
}

// download fetches resultURL into the output directory under a name derived
// from the source file and preset caption. Failures are logged, not fatal.
func (a *App) download(ctx context.Context, resultURL, sourcePath, caption, extension string) {
	if resultURL == "" {
		a.Logger.Error("no result url to download", "path", sourcePath, "preset", caption)
		return
	}
	name := fmt.Sprintf("%s_%s.%s", imagefile.NameWithoutExtension(sourcePath), caption, extension)
	dest, err := imagefile.SafeJoin(a.Config.OutputDir, name)
	if err != nil {
		a.Logger.Error("refusing unsafe output path", "name", name, "error", err)
		return
	}
	if err := a.DownloadFile(ctx, resultURL, dest); err != nil {
		a.Logger.Error("download failed", "url", resultURL, "error", err)
	}
}

// DownloadFile saves the file at fileURL to dest, creating the destination
// directory as needed.
func (a *App) DownloadFile(ctx context.Context, fileURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}
	resp, err := a.downloader.Do(req)
	if err != nil {
		return fmt.Errorf("execute download request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s returned status %d", fileURL, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	a.Logger.Debug("file downloaded", "url", fileURL, "dest", dest)
	return nil
}

// ClearCache wipes every cached entry, auth data included.
func (a *App) ClearCache() error {
	return a.Cache.Clear()
}
