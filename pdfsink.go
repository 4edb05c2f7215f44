package tpl2pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// fpdfSink assembles page images into a PDF document using gofpdf.
// Pages are appended in strictly increasing order; Bytes finalizes the
// document and hands the buffer to the caller.
type fpdfSink struct {
	pdf   *gofpdf.Fpdf
	pages int
}

// Compile-time interface check
var _ Sink = (*fpdfSink)(nil)

// newFpdfSink creates a sink for a document with the given page size in
// millimeters. The page dimensions arrive orientation-swapped, so the
// underlying document is always constructed in portrait terms.
func newFpdfSink(orientation string, widthMM, heightMM float64) (Sink, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: widthMM, Ht: heightMM},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()

	if pdf.Err() {
		return nil, fmt.Errorf("creating document: %w", pdf.Error())
	}
	return &fpdfSink{pdf: pdf, pages: 1}, nil
}

// AddPage starts the next output page.
func (s *fpdfSink) AddPage() error {
	s.pdf.AddPage()
	if s.pdf.Err() {
		return fmt.Errorf("adding page %d: %w", s.pages, s.pdf.Error())
	}
	s.pages++
	return nil
}

// AddImage places a PNG page image on the current page at (x, y) spanning
// w x h millimeters.
func (s *fpdfSink) AddImage(png []byte, x, y, w, h float64) error {
	name := fmt.Sprintf("page-%d", s.pages-1)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if s.pdf.Err() {
		return fmt.Errorf("registering image %s: %w", name, s.pdf.Error())
	}

	s.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if s.pdf.Err() {
		return fmt.Errorf("placing image %s: %w", name, s.pdf.Error())
	}
	return nil
}

// Bytes finalizes the document and returns the assembled PDF.
func (s *fpdfSink) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("finalizing document: %w", err)
	}
	return buf.Bytes(), nil
}
