package tpl2pdf

import (
	"fmt"
	"math"
	"strings"
)

// pxPerMM is the fixed physical-to-pixel ratio used for capture geometry
// (96 CSS pixels per inch).
const pxPerMM = 96.0 / 25.4

// maxPages caps the page count to guard against runaway memory use on
// malformed content.
const maxPages = 1000

// pageFormatSize returns the physical page size in millimeters for a page
// format name (case-insensitive). ok is false for unknown formats.
func pageFormatSize(format string) (widthMM, heightMM float64, ok bool) {
	switch strings.ToLower(format) {
	case PageFormatA4:
		return 210, 297, true
	case PageFormatLetter:
		return 215.9, 279.4, true
	case PageFormatLegal:
		return 215.9, 355.6, true
	}
	return 0, 0, false
}

// geometry is the resolved page geometry for one generation call: physical
// page size with orientation applied, margins, and the header/footer band
// estimates that shrink the content area.
type geometry struct {
	pageWidthMM  float64
	pageHeightMM float64
	margins      Margins
	headerMM     float64 // estimated fixed header band height, 0 when absent
	footerMM     float64 // estimated fixed footer band height, 0 when absent
}

// resolveGeometry derives geometry from validated page settings. Landscape
// swaps the page dimensions.
func resolveGeometry(page *PageSettings, headerMM, footerMM float64) geometry {
	if page == nil {
		page = DefaultPageSettings()
	}
	w, h, _ := pageFormatSize(page.Format)
	if strings.ToLower(page.Orientation) == OrientationLandscape {
		w, h = h, w
	}
	return geometry{
		pageWidthMM:  w,
		pageHeightMM: h,
		margins:      page.Margins,
		headerMM:     headerMM,
		footerMM:     footerMM,
	}
}

// contentWidthMM is the printable width: page width minus horizontal
// margins, never negative.
func (g geometry) contentWidthMM() float64 {
	return math.Max(0, g.pageWidthMM-g.margins.Left-g.margins.Right)
}

// contentHeightMM is the printable height: page height minus vertical
// margins and the header/footer band estimates, never negative.
func (g geometry) contentHeightMM() float64 {
	return math.Max(0, g.pageHeightMM-g.margins.Top-g.margins.Bottom-g.headerMM-g.footerMM)
}

// contentWidthPx converts the printable width to capture pixels.
func (g geometry) contentWidthPx() int {
	return int(math.Round(g.contentWidthMM() * pxPerMM))
}

// pageHeightPx is the pixel height of one capture band.
func (g geometry) pageHeightPx() int {
	return int(math.Round(g.contentHeightMM() * pxPerMM))
}

// pageCount computes how many capture bands cover contentHeightPx, clamped
// to [1, maxPages]. Zero-height content still produces one page.
func (g geometry) pageCount(contentHeightPx int) int {
	pageHeight := g.pageHeightPx()
	if pageHeight <= 0 || contentHeightPx <= 0 {
		return 1
	}
	n := (contentHeightPx + pageHeight - 1) / pageHeight
	if n < 1 {
		return 1
	}
	if n > maxPages {
		return maxPages
	}
	return n
}

// validateGeometry rejects degenerate configurations where the margins and
// band estimates consume the whole page.
func validateGeometry(g geometry) error {
	if g.contentWidthMM() <= 0 {
		return fmt.Errorf("%w: horizontal margins %.1f+%.1fmm on a %.1fmm page",
			ErrDegenerateGeometry, g.margins.Left, g.margins.Right, g.pageWidthMM)
	}
	if g.contentHeightMM() <= 0 {
		return fmt.Errorf("%w: vertical margins and bands leave %.1fmm of %.1fmm page",
			ErrDegenerateGeometry, g.contentHeightMM(), g.pageHeightMM)
	}
	return nil
}

// mmToInches converts millimeters to inches for the browser print surface.
func mmToInches(mm float64) float64 {
	return mm / 25.4
}
