package tpl2pdf

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// teardownGrace keeps the surface alive briefly after invoking the platform
// print engine, so the platform captures the content before removal.
const teardownGrace = 250 * time.Millisecond

// downloadSink receives a finished artifact plus a filename. Purely a
// hand-off; the default implementation writes a file.
type downloadSink func(data []byte, path string) error

// nativePrint invokes the platform print capability once on a mounted
// surface and hands the produced document to the download sink. Pagination
// is delegated entirely to the platform; no artifact is returned to the
// caller. A failure to obtain a usable print handle is fatal.
func nativePrint(ctx context.Context, surface Surface, geom geometry, scale float64, outputPath string, download downloadSink, logger *zap.Logger) error {
	defer func() {
		graceWait(ctx)
		surface.Release()
	}()

	// Geometry already carries orientation-swapped page dimensions, so the
	// paper size goes through as-is and Landscape stays unset.
	opts := PrintOptions{
		PaperWidthIn:   mmToInches(geom.pageWidthMM),
		PaperHeightIn:  mmToInches(geom.pageHeightMM),
		MarginTopIn:    mmToInches(geom.margins.Top),
		MarginRightIn:  mmToInches(geom.margins.Right),
		MarginBottomIn: mmToInches(geom.margins.Bottom),
		MarginLeftIn:   mmToInches(geom.margins.Left),
		Scale:          scale,
	}

	pdf, err := surface.PrintToPDF(ctx, opts)
	if err != nil {
		return newGenerationError(PhaseDownload, err)
	}

	if err := download(pdf, outputPath); err != nil {
		return newGenerationError(PhaseDownload, err)
	}

	logger.Debug("native print invoked", zap.Int("bytes", len(pdf)), zap.String("path", outputPath))
	return nil
}

// graceWait sleeps the teardown grace period unless the context is done.
func graceWait(ctx context.Context) {
	timer := time.NewTimer(teardownGrace)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
