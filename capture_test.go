package tpl2pdf

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

// testGeometry returns a default A4 portrait geometry without bands.
func testGeometry() geometry {
	return resolveGeometry(DefaultPageSettings(), 0, 0)
}

func TestCapturePagesSinglePage(t *testing.T) {
	surface := newFakeSurface()
	surface.contentHeight = 100
	sink := newFakeSink()

	pdf, err := capturePages(context.Background(), surface, sink, testGeometry(), DefaultScale, zap.NewNop())
	if err != nil {
		t.Fatalf("capturePages() error = %v", err)
	}

	if len(pdf) == 0 {
		t.Error("capturePages() returned no bytes")
	}
	if surface.captures != 1 {
		t.Errorf("captures = %d, want 1", surface.captures)
	}
	if sink.pages != 1 {
		t.Errorf("sink pages = %d, want 1 (first page exists from construction)", sink.pages)
	}
	if surface.released == 0 {
		t.Error("surface not released")
	}
}

func TestCapturePagesMultiPage(t *testing.T) {
	geom := testGeometry()
	pageHeight := geom.pageHeightPx()

	surface := newFakeSurface()
	surface.contentHeight = pageHeight*2 + 1 // three bands
	sink := newFakeSink()

	_, err := capturePages(context.Background(), surface, sink, geom, DefaultScale, zap.NewNop())
	if err != nil {
		t.Fatalf("capturePages() error = %v", err)
	}

	if surface.captures != 3 {
		t.Errorf("captures = %d, want 3", surface.captures)
	}
	if sink.pages != 3 {
		t.Errorf("sink pages = %d, want 3", sink.pages)
	}
	if sink.images != 3 {
		t.Errorf("sink images = %d, want 3", sink.images)
	}

	// Bands are captured sequentially, top to bottom.
	wantOffsets := []int{0, pageHeight, pageHeight * 2}
	if len(surface.scrollOffsets) != len(wantOffsets) {
		t.Fatalf("scroll offsets = %v, want %v", surface.scrollOffsets, wantOffsets)
	}
	for i, want := range wantOffsets {
		if surface.scrollOffsets[i] != want {
			t.Errorf("scroll offset[%d] = %d, want %d", i, surface.scrollOffsets[i], want)
		}
	}
}

func TestCapturePagesCaptureFailure(t *testing.T) {
	geom := testGeometry()

	surface := newFakeSurface()
	surface.contentHeight = geom.pageHeightPx() * 3
	surface.failAtPage = 1
	sink := newFakeSink()

	pdf, err := capturePages(context.Background(), surface, sink, geom, DefaultScale, zap.NewNop())

	if pdf != nil {
		t.Error("capturePages() returned a partial artifact after failure")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Phase != PhaseCanvasRendering {
		t.Errorf("Phase = %q, want %q", genErr.Phase, PhaseCanvasRendering)
	}
	if genErr.Page != 1 {
		t.Errorf("Page = %d, want 1", genErr.Page)
	}
	if surface.released == 0 {
		t.Error("surface not released after capture failure")
	}
}

func TestCapturePagesSinkFailure(t *testing.T) {
	surface := newFakeSurface()
	surface.contentHeight = 100
	sink := newFakeSink()
	sink.failImage = 0

	pdf, err := capturePages(context.Background(), surface, sink, testGeometry(), DefaultScale, zap.NewNop())

	if pdf != nil {
		t.Error("capturePages() returned a partial artifact after sink failure")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Phase != PhasePDFAssembly {
		t.Errorf("Phase = %q, want %q", genErr.Phase, PhasePDFAssembly)
	}
	if surface.released == 0 {
		t.Error("surface not released after sink failure")
	}
}

func TestCapturePagesContentSizeFailure(t *testing.T) {
	surface := newFakeSurface()
	surface.sizeErr = errors.New("no metrics")
	sink := newFakeSink()

	_, err := capturePages(context.Background(), surface, sink, testGeometry(), DefaultScale, zap.NewNop())

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Phase != PhaseSurfaceMount {
		t.Errorf("Phase = %q, want %q", genErr.Phase, PhaseSurfaceMount)
	}
	if surface.released == 0 {
		t.Error("surface not released after metrics failure")
	}
}

func TestCapturePagesFinalizeFailure(t *testing.T) {
	surface := newFakeSurface()
	surface.contentHeight = 100
	sink := newFakeSink()
	sink.bytesErr = errors.New("finalize refused")

	_, err := capturePages(context.Background(), surface, sink, testGeometry(), DefaultScale, zap.NewNop())

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if genErr.Phase != PhasePDFAssembly {
		t.Errorf("Phase = %q, want %q", genErr.Phase, PhasePDFAssembly)
	}
	if genErr.Page != -1 {
		t.Errorf("Page = %d, want -1 for page-independent failure", genErr.Page)
	}
}

func TestCapturePagesZeroContentStillOnePage(t *testing.T) {
	surface := newFakeSurface()
	surface.contentHeight = 0
	sink := newFakeSink()

	_, err := capturePages(context.Background(), surface, sink, testGeometry(), DefaultScale, zap.NewNop())
	if err != nil {
		t.Fatalf("capturePages() error = %v", err)
	}
	if surface.captures != 1 {
		t.Errorf("captures = %d, want 1 for empty content", surface.captures)
	}
}

func TestCapturePagesCancelledContext(t *testing.T) {
	surface := newFakeSurface()
	surface.contentHeight = 100
	sink := newFakeSink()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := capturePages(ctx, surface, sink, testGeometry(), DefaultScale, zap.NewNop())
	if err == nil {
		t.Fatal("capturePages() with cancelled context succeeded")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
	if surface.released == 0 {
		t.Error("surface not released after cancellation")
	}
}
