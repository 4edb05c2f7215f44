package tpl2pdf

import (
	"strings"

	"github.com/avelar/go-tpl2pdf/internal/assets"
)

// composeOptions carries the document chrome for composition: custom CSS
// plus optional fixed header/footer bands with their estimated heights.
type composeOptions struct {
	css            string
	headerHTML     string
	footerHTML     string
	headerHeightMM float64
	footerHeightMM float64
}

// bandHeights returns the effective header/footer band heights: zero when a
// band has no content, the default estimate when content is present but no
// height was supplied.
func (o *composeOptions) bandHeights() (headerMM, footerMM float64) {
	if o == nil {
		return 0, 0
	}
	if o.headerHTML != "" {
		headerMM = o.headerHeightMM
		if headerMM <= 0 {
			headerMM = defaultBandHeightMM
		}
	}
	if o.footerHTML != "" {
		footerMM = o.footerHeightMM
		if footerMM <= 0 {
			footerMM = defaultBandHeightMM
		}
	}
	return headerMM, footerMM
}

// composeDocument wraps a rendered HTML fragment in a complete, styled,
// self-contained document: page-size and margin directives, the embedded
// base stylesheet, table pagination rules, break utility classes, and the
// optional fixed header/footer bands. Output is deterministic for identical
// inputs.
func composeDocument(body string, geom geometry, opts *composeOptions) string {
	var css strings.Builder
	css.WriteString(assets.BaseStyle())
	css.WriteString(buildPageCSS(geom))
	css.WriteString(buildTableCSS())
	css.WriteString(buildBreakUtilityCSS())
	css.WriteString(buildBandCSS(geom.headerMM, geom.footerMM))
	if opts != nil && opts.css != "" {
		css.WriteString("\n/* Custom styles */\n")
		css.WriteString(sanitizeCSS(opts.css))
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	doc.WriteString(`<meta charset="utf-8">` + "\n")
	doc.WriteString("<title>Document</title>\n<style>")
	doc.WriteString(css.String())
	doc.WriteString("</style>\n</head>\n<body>\n")

	// Bands are included only when non-empty content is supplied for them.
	if opts != nil && opts.headerHTML != "" {
		doc.WriteString(`<header class="doc-header">`)
		doc.WriteString(opts.headerHTML)
		doc.WriteString("</header>\n")
	}

	doc.WriteString(body)

	if opts != nil && opts.footerHTML != "" {
		doc.WriteString(`<footer class="doc-footer">`)
		doc.WriteString(opts.footerHTML)
		doc.WriteString("</footer>\n")
	}

	doc.WriteString("\n</body>\n</html>\n")
	return doc.String()
}
