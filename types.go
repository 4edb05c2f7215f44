package tpl2pdf

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Page format constants.
const (
	PageFormatA4     = "a4"
	PageFormatLetter = "letter"
	PageFormatLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Output mode constants.
const (
	// OutputModeBytes captures the document page by page and returns the
	// assembled PDF as bytes.
	OutputModeBytes = "bytes"

	// OutputModeNativePrint hands the document to the browser's own print
	// engine, which owns pagination; no bytes are returned to the caller.
	OutputModeNativePrint = "nativePrint"
)

// Default margins in millimeters.
const DefaultMarginMM = 10.0

// Margins holds per-side page margins in millimeters.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargins returns margins with the same value on all sides.
func UniformMargins(mm float64) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// PageSettings configures page dimensions for generation.
type PageSettings struct {
	Format      string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margins     Margins // millimeters
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Format:      PageFormatA4,
		Orientation: OrientationPortrait,
		Margins:     UniformMargins(DefaultMarginMM),
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, _, ok := pageFormatSize(p.Format); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageFormat, p.Format)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	for side, mm := range map[string]float64{
		"top": p.Margins.Top, "right": p.Margins.Right,
		"bottom": p.Margins.Bottom, "left": p.Margins.Left,
	} {
		if mm < 0 {
			return fmt.Errorf("%w: %s %.1fmm", ErrInvalidMargin, side, mm)
		}
	}

	return nil
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Scale factor bounds for capture.
const (
	MinScale     = 0.5
	MaxScale     = 4.0
	DefaultScale = 2.0
)

// Input contains generation parameters.
type Input struct {
	Template string         // template source (required)
	Data     map[string]any // data context for template rendering

	// Markdown treats the rendered template output as Markdown and
	// converts it to HTML before composition.
	Markdown bool

	CSS  string        // custom CSS appended to the base stylesheet
	Page *PageSettings // page settings (optional, nil = defaults)

	HeaderHTML     string  // fixed header band content (empty = no band)
	FooterHTML     string  // fixed footer band content (empty = no band)
	HeaderHeightMM float64 // estimated band height (0 = default)
	FooterHeightMM float64 // estimated band height (0 = default)

	OutputMode string  // "bytes" (default) or "nativePrint"
	OutputPath string  // download destination for nativePrint mode
	Scale      float64 // capture scale factor (0 = default)

	// ResourceTimeout bounds the wait for fonts and images after mount.
	// Expiry degrades to proceeding with whatever loaded, never an error.
	ResourceTimeout time.Duration

	Debug bool // keep the composed HTML in the result
}

// Validate checks output mode and scale; page settings validate separately.
func (in Input) Validate() error {
	if in.Template == "" {
		return ErrEmptyTemplate
	}
	switch in.OutputMode {
	case "", OutputModeBytes, OutputModeNativePrint:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutputMode, in.OutputMode)
	}
	if in.Scale != 0 && (in.Scale < MinScale || in.Scale > MaxScale) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidScale, in.Scale, MinScale, MaxScale)
	}
	return in.Page.Validate()
}

// Result holds the outcome of one generation call.
type Result struct {
	// PDF is the assembled document. Nil in nativePrint mode, where the
	// artifact is handed to the download sink as a side effect.
	PDF []byte

	// HTML is the composed document, populated when Input.Debug is set.
	HTML string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	logger  *zap.Logger
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the overall generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tpl2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithLogger sets the logger for debug output. The default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.cfg.logger = logger
		}
	}
}

// WithSurfaceFactory overrides how renderable surfaces are created.
// Intended for tests substituting a fake capture capability.
func WithSurfaceFactory(factory SurfaceFactory) Option {
	return func(s *Service) {
		s.newSurface = factory
	}
}

// WithSinkFactory overrides how assembly sinks are created.
// Intended for tests substituting a fake assembly capability.
func WithSinkFactory(factory SinkFactory) Option {
	return func(s *Service) {
		s.newSink = factory
	}
}
