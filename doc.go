// Package tpl2pdf turns an HTML template plus a nested data payload into a
// paginated, print-ready PDF using headless Chrome.
//
// # Quick Start
//
// Create a service, generate a document, and close when done:
//
//	svc := tpl2pdf.New()
//	defer svc.Close()
//
//	result, err := svc.Generate(ctx, tpl2pdf.Input{
//	    Template: "<h1>{{title}}</h1><ul>{{#each items}}<li>{{this}}</li>{{/each}}</ul>",
//	    Data:     map[string]any{"title": "Report", "items": []any{"a", "b"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0644)
//
// # Template Language
//
// Templates interleave literal HTML with three tag kinds:
//
//   - {{path}} substitutes the HTML-escaped value at a dot-separated path
//   - {{{path}}} substitutes the value verbatim
//   - {{#each path}}...{{/each}} repeats its body per element of a sequence
//
// Inside a loop body, this refers to the current item, this.field resolves
// against it, a map-like item's keys are addressable directly, and the
// loop-local variables @index, @index1, @first, and @last are in scope.
// Missing interpolation paths render as the empty string; a malformed
// template or a missing/non-sequence loop target returns a TemplateError.
//
// # Generation Pipeline
//
// One generation call runs these stages:
//
//  1. Template rendering against the data context
//  2. Optional Markdown conversion of the rendered body (Input.Markdown)
//  3. Composition into a complete styled document (page geometry,
//     header/footer bands, pagination-friendly CSS)
//  4. Output via one of two strategies, selected by Input.OutputMode
//
// The bytes strategy slices the rendered document into page-sized bands,
// captures each band as an image via headless Chrome, and assembles the
// images into a PDF, holding at most one page image in memory at a time.
// The nativePrint strategy hands the document to Chrome's own print engine,
// which owns pagination, and writes the result through the download sink.
//
// # Parallel Generation
//
// For batch work, use ServicePool to manage multiple browser instances:
//
//	pool := tpl2pdf.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Generate(ctx, input)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// Use ROD_BROWSER_BIN to point at a pre-installed Chrome binary; when it is
// set, or when CI=true, the browser launches with the sandbox disabled.
package tpl2pdf
