package tpl2pdf

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// settleDelay lets a scroll reposition take visual effect before capture.
// Fixed and bounded, never data-dependent.
const settleDelay = 100 * time.Millisecond

// capturePages slices the mounted document into page-sized bands, captures
// each band in order, and feeds it to the assembly sink. At most one page
// image is resident at a time; a capture failure on any page fails the
// whole call and no partial artifact is returned. The surface is released
// on every exit path.
func capturePages(ctx context.Context, surface Surface, sink Sink, geom geometry, scale float64, logger *zap.Logger) ([]byte, error) {
	defer surface.Release()

	_, contentHeightPx, err := surface.ContentSize(ctx)
	if err != nil {
		return nil, newGenerationError(PhaseSurfaceMount, err)
	}

	pageHeightPx := geom.pageHeightPx()
	totalPages := geom.pageCount(contentHeightPx)

	logger.Debug("capturing pages",
		zap.Int("totalPages", totalPages),
		zap.Int("contentHeightPx", contentHeightPx),
		zap.Int("pageHeightPx", pageHeightPx))

	region := CaptureRegion{
		Width:  geom.contentWidthPx(),
		Height: pageHeightPx,
		Scale:  scale,
	}

	// Image placement on each output page: content origin, spanning the
	// full content area. The final band spans a full page height even when
	// the content runs out early; trailing blank space is expected.
	imgX := geom.margins.Left
	imgY := geom.margins.Top + geom.headerMM
	imgW := geom.contentWidthMM()
	imgH := geom.contentHeightMM()

	for pageIndex := 0; pageIndex < totalPages; pageIndex++ {
		if pageIndex > 0 {
			if err := sink.AddPage(); err != nil {
				return nil, newPageError(PhasePDFAssembly, pageIndex, err)
			}
		}

		offsetY := pageIndex * pageHeightPx
		if err := surface.ScrollTo(ctx, offsetY); err != nil {
			return nil, newPageError(PhaseCanvasRendering, pageIndex, err)
		}

		if err := settle(ctx); err != nil {
			return nil, newPageError(PhaseCanvasRendering, pageIndex, err)
		}

		region.OffsetY = offsetY
		img, err := surface.Capture(ctx, region)
		if err != nil {
			return nil, newPageError(PhaseCanvasRendering, pageIndex, err)
		}

		// img goes out of scope here; only one page image is resident at
		// a time.
		if err := sink.AddImage(img, imgX, imgY, imgW, imgH); err != nil {
			return nil, newPageError(PhasePDFAssembly, pageIndex, err)
		}
	}

	pdf, err := sink.Bytes()
	if err != nil {
		return nil, newGenerationError(PhasePDFAssembly, err)
	}

	logger.Debug("assembled document", zap.Int("bytes", len(pdf)), zap.Int("pages", totalPages))
	return pdf, nil
}

// settle waits the fixed positioning delay, honoring cancellation.
func settle(ctx context.Context) error {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
