package main

import (
	"errors"
	"os"

	tpl2pdf "github.com/avelar/go-tpl2pdf"
)

// Exit codes for the tpl2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful generation
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitTemplate = 5 // Template syntax or data errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Template errors (exit 5)
	var tplErr *tpl2pdf.TemplateError
	if errors.As(err, &tplErr) {
		return ExitTemplate
	}

	// Browser errors (exit 4)
	var genErr *tpl2pdf.GenerationError
	if errors.Is(err, tpl2pdf.ErrBrowserConnect) ||
		errors.Is(err, tpl2pdf.ErrUnsupported) ||
		errors.Is(err, tpl2pdf.ErrPageCreate) ||
		errors.Is(err, tpl2pdf.ErrPageLoad) ||
		errors.As(err, &genErr) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrReadData) ||
		errors.Is(err, ErrReadBand) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, tpl2pdf.ErrWritePDF) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, tpl2pdf.ErrEmptyTemplate) ||
		errors.Is(err, tpl2pdf.ErrInvalidPageFormat) ||
		errors.Is(err, tpl2pdf.ErrInvalidOrientation) ||
		errors.Is(err, tpl2pdf.ErrInvalidMargin) ||
		errors.Is(err, tpl2pdf.ErrInvalidOutputMode) ||
		errors.Is(err, tpl2pdf.ErrInvalidScale) ||
		errors.Is(err, tpl2pdf.ErrDegenerateGeometry) {
		return ExitUsage
	}

	return ExitGeneral
}
