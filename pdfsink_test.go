package tpl2pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG encodes a small solid image for sink tests.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestNewFpdfSink(t *testing.T) {
	sink, err := newFpdfSink(OrientationPortrait, 210, 297)
	if err != nil {
		t.Fatalf("newFpdfSink() error = %v", err)
	}

	// First page exists from construction; Bytes on a fresh sink yields a
	// one-page document.
	pdf, err := sink.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic: %q", pdf[:min(8, len(pdf))])
	}
}

func TestFpdfSinkMultiplePages(t *testing.T) {
	sink, err := newFpdfSink(OrientationPortrait, 210, 297)
	if err != nil {
		t.Fatalf("newFpdfSink() error = %v", err)
	}

	img := testPNG(t)
	if err := sink.AddImage(img, 10, 10, 190, 277); err != nil {
		t.Fatalf("AddImage() page 0 error = %v", err)
	}

	for i := 1; i < 3; i++ {
		if err := sink.AddPage(); err != nil {
			t.Fatalf("AddPage() %d error = %v", i, err)
		}
		if err := sink.AddImage(img, 10, 10, 190, 277); err != nil {
			t.Fatalf("AddImage() page %d error = %v", i, err)
		}
	}

	pdf, err := sink.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if len(pdf) == 0 {
		t.Error("Bytes() returned empty document")
	}
	// Three pages in the page tree.
	if got := bytes.Count(pdf, []byte("/Type /Page\r")) + bytes.Count(pdf, []byte("/Type /Page\n")); got < 3 {
		t.Errorf("assembled document has %d page objects, want >= 3", got)
	}
}

func TestFpdfSinkRejectsGarbageImage(t *testing.T) {
	sink, err := newFpdfSink(OrientationPortrait, 210, 297)
	if err != nil {
		t.Fatalf("newFpdfSink() error = %v", err)
	}

	if err := sink.AddImage([]byte("not a png"), 0, 0, 10, 10); err == nil {
		t.Error("AddImage() with invalid PNG data succeeded")
	}
}
