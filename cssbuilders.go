package tpl2pdf

import (
	"fmt"
	"strings"
)

// defaultFontFamily is the standard font stack for generated documents.
const defaultFontFamily = "sans-serif"

// defaultBandHeightMM is the estimated height of a header or footer band
// when the caller does not supply one.
const defaultBandHeightMM = 15.0

// buildPageCSS generates the @page directive and the body sizing rules for
// the resolved geometry. The printable width is fixed so the capture bands
// line up with the assembled page size.
func buildPageCSS(g geometry) string {
	return fmt.Sprintf(`
/* Page geometry */
@page {
  size: %.1fmm %.1fmm;
  margin: %.1fmm %.1fmm %.1fmm %.1fmm;
}
html, body {
  margin: 0;
  padding: 0;
  width: %.1fmm;
  font-family: %s;
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
`, g.pageWidthMM, g.pageHeightMM,
		g.margins.Top, g.margins.Right, g.margins.Bottom, g.margins.Left,
		g.contentWidthMM(), defaultFontFamily)
}

// buildTableCSS generates table pagination rules: header row groups repeat
// on every page, and rows, cells, and images avoid splitting across a page
// boundary where the renderer honors the hint.
func buildTableCSS() string {
	return `
/* Table pagination */
table {
  border-collapse: collapse;
  width: 100%;
}
thead {
  display: table-header-group;
}
tfoot {
  display: table-footer-group;
}
tr, td, th {
  break-inside: avoid;
  page-break-inside: avoid;
}
img {
  max-width: 100%;
  break-inside: avoid;
  page-break-inside: avoid;
}
`
}

// buildBreakUtilityCSS generates utility classes for forced and avoided
// page breaks.
func buildBreakUtilityCSS() string {
	return `
/* Break utilities */
.page-break {
  break-before: page;
  page-break-before: always;
}
.avoid-break {
  break-inside: avoid;
  page-break-inside: avoid;
}
`
}

// buildBandCSS generates the fixed header/footer band rules. Bands pin to
// the page edges and push the content area in by their estimated heights.
// Returns "" when neither band is present.
func buildBandCSS(headerMM, footerMM float64) string {
	if headerMM <= 0 && footerMM <= 0 {
		return ""
	}

	var buf strings.Builder

	if headerMM > 0 {
		buf.WriteString(fmt.Sprintf(`
/* Fixed header band */
.doc-header {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  height: %.1fmm;
  overflow: hidden;
}
body {
  padding-top: %.1fmm;
}
`, headerMM, headerMM))
	}

	if footerMM > 0 {
		buf.WriteString(fmt.Sprintf(`
/* Fixed footer band */
.doc-footer {
  position: fixed;
  bottom: 0;
  left: 0;
  right: 0;
  height: %.1fmm;
  overflow: hidden;
}
body {
  padding-bottom: %.1fmm;
}
`, footerMM, footerMM))
	}

	return buf.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
// Prevents CSS injection by escaping </style> and similar closing sequences.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
