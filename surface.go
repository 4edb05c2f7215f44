package tpl2pdf

import (
	"context"
	"time"
)

// CaptureRegion identifies one page-sized band of the mounted document.
// Offsets and sizes are in CSS pixels.
type CaptureRegion struct {
	OffsetY int
	Width   int
	Height  int
	Scale   float64
}

// PrintOptions configures the platform print capability for the native
// print path. Dimensions are in inches, matching the browser print surface.
type PrintOptions struct {
	PaperWidthIn   float64
	PaperHeightIn  float64
	MarginTopIn    float64
	MarginRightIn  float64
	MarginBottomIn float64
	MarginLeftIn   float64
	Landscape      bool
	Scale          float64
}

// Surface is a renderable surface holding one mounted document. It exposes
// content metrics, a scroll position, a region capture operation, and a
// one-shot platform print capability. A surface belongs to a single
// generation call; Release must be safe on every exit path.
type Surface interface {
	// Mount loads a composed HTML document into the surface.
	Mount(ctx context.Context, html string) error

	// WaitReady waits for fonts and images, bounded by timeout. Expiry is
	// tolerated: rendering proceeds with whatever loaded.
	WaitReady(ctx context.Context, timeout time.Duration)

	// ContentSize reports the total rendered content size in CSS pixels.
	ContentSize(ctx context.Context) (width, height int, err error)

	// ScrollTo positions the surface at a vertical pixel offset.
	ScrollTo(ctx context.Context, offsetY int) error

	// Capture rasterizes the region at the current position into a PNG.
	Capture(ctx context.Context, region CaptureRegion) ([]byte, error)

	// PrintToPDF invokes the platform print engine once; the platform owns
	// pagination.
	PrintToPDF(ctx context.Context, opts PrintOptions) ([]byte, error)

	// Release tears the surface down. Idempotent.
	Release()
}

// Sink accumulates page images into a single output document. Pages are
// appended in strictly increasing order; Bytes transfers ownership of the
// finished artifact to the caller.
type Sink interface {
	// AddPage starts the next output page. The first page exists from
	// construction, mirroring the assembly backends.
	AddPage() error

	// AddImage places a PNG page image at (x, y) spanning w x h, all in
	// millimeters on the current page.
	AddImage(png []byte, x, y, w, h float64) error

	// Bytes finalizes the document and returns it as an immutable buffer.
	Bytes() ([]byte, error)
}

// SurfaceFactory creates a fresh surface for one generation call.
type SurfaceFactory func() (Surface, error)

// SinkFactory creates an assembly sink for a document with the given page
// size in millimeters.
type SinkFactory func(orientation string, widthMM, heightMM float64) (Sink, error)
