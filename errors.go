package tpl2pdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptyTemplate  = errors.New("template content cannot be empty")
	ErrUnsupported    = errors.New("browser capability is not available in this environment")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrMarkdownRender = errors.New("markdown conversion failed")

	// Page settings validation errors.
	ErrInvalidPageFormat  = errors.New("invalid page format")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrDegenerateGeometry = errors.New("margins leave no printable area")

	// Output settings validation errors.
	ErrInvalidOutputMode = errors.New("invalid output mode")
	ErrInvalidScale      = errors.New("invalid scale factor")
)

// TemplateError kinds.
const (
	TemplateErrUnterminatedBlock = "unterminated each block"
	TemplateErrDanglingClose     = "each close tag without opener"
	TemplateErrTargetMissing     = "each target not found"
	TemplateErrTargetNotSequence = "each target not a sequence"
)

// TemplateError reports a structurally malformed template or a loop block
// whose target is missing or not sequence-typed. It is never silently
// recovered; Render surfaces it to the caller.
type TemplateError struct {
	Kind   string // one of the TemplateErr* constants
	Path   string // offending key path, when available
	Detail string // optional extra context
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	msg := "template error: " + e.Kind
	if e.Path != "" {
		msg += fmt.Sprintf(": %q", e.Path)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Generation phases. A GenerationError is tagged with the phase in which the
// underlying failure occurred.
const (
	PhaseTemplateRendering = "templateRendering"
	PhaseHTMLComposition   = "htmlComposition"
	PhaseSurfaceMount      = "surfaceMount"
	PhaseFontLoading       = "fontLoading"
	PhaseImageLoading      = "imageLoading"
	PhaseCanvasRendering   = "canvasRendering"
	PhasePDFAssembly       = "pdfAssembly"
	PhaseDownload          = "download"
	PhaseUnknown           = "unknown"
)

// GenerationError reports a failure during document generation. Page is the
// zero-based page index for per-page failures and -1 otherwise.
type GenerationError struct {
	Phase string
	Page  int
	Err   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Page >= 0 {
		return fmt.Sprintf("pdf generation failed in phase %s on page %d: %v", e.Phase, e.Page, e.Err)
	}
	return fmt.Sprintf("pdf generation failed in phase %s: %v", e.Phase, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// newGenerationError wraps err with a phase tag. Page-independent failures
// use page index -1.
func newGenerationError(phase string, err error) *GenerationError {
	return &GenerationError{Phase: phase, Page: -1, Err: err}
}

// newPageError wraps a per-page failure with the page index that failed.
func newPageError(phase string, page int, err error) *GenerationError {
	return &GenerationError{Phase: phase, Page: page, Err: err}
}
