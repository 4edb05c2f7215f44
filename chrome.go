package tpl2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/avelar/go-tpl2pdf/internal/fileutil"
)

// resourcePollInterval is the readiness poll cadence after mount.
const resourcePollInterval = 50 * time.Millisecond

// rodBrowser manages one headless Chrome instance shared by the surfaces of
// a Service. Rod automatically downloads Chromium on first run if not found.
type rodBrowser struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
	logger  *zap.Logger
}

// newRodBrowser creates a rodBrowser with the given timeout.
func newRodBrowser(timeout time.Duration, logger *zap.Logger) *rodBrowser {
	return &rodBrowser{timeout: timeout, logger: logger}
}

// ensure lazily launches and connects to the browser. A launch failure
// means the environment lacks the browser capability entirely.
func (b *rodBrowser) ensure() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = browser
	return b.browser, nil
}

// Close releases browser resources.
func (b *rodBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		err := b.browser.Close()
		b.browser = nil
		return err
	}
	return nil
}

// surfaceFactory returns a SurfaceFactory creating surfaces bound to this
// browser. Each generation call owns its own surface (page); the browser
// process is shared.
func (b *rodBrowser) surfaceFactory() SurfaceFactory {
	return func() (Surface, error) {
		if _, err := b.ensure(); err != nil {
			return nil, err
		}
		return &rodSurface{b: b, logger: b.logger}, nil
	}
}

// rodSurface is a renderable surface backed by one browser page. The
// composed document pins its own layout width in CSS, so the page viewport
// does not affect capture geometry; captures clip beyond the viewport.
type rodSurface struct {
	b        *rodBrowser
	page     *rod.Page
	cleanup  func()
	released bool
	logger   *zap.Logger
}

// Compile-time interface check
var _ Surface = (*rodSurface)(nil)

// Mount writes the document to a temp file and loads it in a fresh page.
func (s *rodSurface) Mount(ctx context.Context, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	browser, err := s.b.ensure()
	if err != nil {
		return err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return err
	}
	s.cleanup = cleanup

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		cleanup()
		s.cleanup = nil
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	s.page = page

	timeout := s.b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return nil
}

// WaitReady polls font and image readiness until the bounded timeout.
// Expiry degrades to proceeding with whatever loaded so far.
func (s *rodSurface) WaitReady(ctx context.Context, timeout time.Duration) {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return
		}

		res, err := s.page.Eval(`() => document.fonts.status === "loaded" &&
			Array.from(document.images).every(img => img.complete)`)
		if err == nil && res.Value.Bool() {
			return
		}

		time.Sleep(resourcePollInterval)
	}

	s.logger.Debug("resource readiness timed out, proceeding with partial resources",
		zap.Duration("timeout", timeout))
}

// ContentSize reports the rendered document's scroll extents in CSS pixels.
func (s *rodSurface) ContentSize(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	res, err := s.page.Eval(`() => [
		document.documentElement.scrollWidth,
		document.documentElement.scrollHeight,
	]`)
	if err != nil {
		return 0, 0, fmt.Errorf("reading content size: %w", err)
	}

	arr := res.Value.Arr()
	if len(arr) != 2 {
		return 0, 0, fmt.Errorf("reading content size: unexpected result %v", res.Value)
	}
	return arr[0].Int(), arr[1].Int(), nil
}

// ScrollTo positions the page at a vertical pixel offset.
func (s *rodSurface) ScrollTo(ctx context.Context, offsetY int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.page.Eval(`y => window.scrollTo(0, y)`, offsetY)
	if err != nil {
		return fmt.Errorf("scrolling to %dpx: %w", offsetY, err)
	}
	return nil
}

// Capture rasterizes one page band into a PNG via a clipped screenshot.
// The clip uses absolute document coordinates, so captures are independent
// of the viewport size.
func (s *rodSurface) Capture(ctx context.Context, region CaptureRegion) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := s.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      float64(region.OffsetY),
			Width:  float64(region.Width),
			Height: float64(region.Height),
			Scale:  region.Scale,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("capturing region at %dpx: %w", region.OffsetY, err)
	}
	return img, nil
}

// PrintToPDF invokes Chrome's print engine once; Chrome owns pagination.
func (s *rodSurface) PrintToPDF(ctx context.Context, opts PrintOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	printOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(opts.PaperWidthIn),
		PaperHeight:     floatPtr(opts.PaperHeightIn),
		MarginTop:       floatPtr(opts.MarginTopIn),
		MarginRight:     floatPtr(opts.MarginRightIn),
		MarginBottom:    floatPtr(opts.MarginBottomIn),
		MarginLeft:      floatPtr(opts.MarginLeftIn),
		Landscape:       opts.Landscape,
		PrintBackground: true,
	}
	if opts.Scale > 0 {
		printOpts.Scale = floatPtr(opts.Scale)
	}

	reader, err := s.page.PDF(printOpts)
	if err != nil {
		return nil, fmt.Errorf("invoking print engine: %w", err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading print stream: %w", err)
	}
	return pdf, nil
}

// Release closes the page and removes the temp file. Idempotent.
func (s *rodSurface) Release() {
	if s.released {
		return
	}
	s.released = true

	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
