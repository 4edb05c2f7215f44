package tpl2pdf

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// defaultResourceTimeout bounds the post-mount wait for fonts and images.
const defaultResourceTimeout = 5 * time.Second

// defaultOutputPath is the nativePrint download destination when the caller
// supplies none.
const defaultOutputPath = "document.pdf"

// Service orchestrates the template-to-PDF pipeline.
type Service struct {
	cfg         serviceConfig
	mdConverter markdownConverter
	browser     *rodBrowser
	newSurface  SurfaceFactory
	newSink     SinkFactory
	download    downloadSink
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			logger:  zap.NewNop(),
		},
		mdConverter: newGoldmarkConverter(),
		download:    SaveFile,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create the browser-backed capabilities if not injected (e.g., by tests)
	if s.newSurface == nil {
		s.browser = newRodBrowser(s.cfg.timeout, s.cfg.logger)
		s.newSurface = s.browser.surfaceFactory()
	}
	if s.newSink == nil {
		s.newSink = newFpdfSink
	}

	return s
}

// Generate runs the full pipeline for one input. In bytes mode it returns
// the assembled PDF; in nativePrint mode it hands the platform-printed
// document to the download sink and returns no bytes. The context is used
// for cancellation and timeout.
func (s *Service) Generate(ctx context.Context, input Input) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	// Acquire the surface before any rendering work so a missing browser
	// capability surfaces immediately.
	surface, err := s.newSurface()
	if err != nil {
		return nil, err
	}
	defer surface.Release()

	body, err := Render(input.Template, input.Data)
	if err != nil {
		// Template errors propagate verbatim, never wrapped or swallowed.
		return nil, err
	}

	if input.Markdown {
		body, err = s.mdConverter.ToHTML(ctx, body)
		if err != nil {
			return nil, newGenerationError(PhaseHTMLComposition, err)
		}
	}

	composeOpts := &composeOptions{
		css:            input.CSS,
		headerHTML:     input.HeaderHTML,
		footerHTML:     input.FooterHTML,
		headerHeightMM: input.HeaderHeightMM,
		footerHeightMM: input.FooterHeightMM,
	}
	headerMM, footerMM := composeOpts.bandHeights()

	geom := resolveGeometry(input.Page, headerMM, footerMM)
	if err := validateGeometry(geom); err != nil {
		return nil, err
	}

	doc := composeDocument(body, geom, composeOpts)

	if err := surface.Mount(ctx, doc); err != nil {
		return nil, newGenerationError(PhaseSurfaceMount, err)
	}

	resourceTimeout := input.ResourceTimeout
	if resourceTimeout <= 0 {
		resourceTimeout = defaultResourceTimeout
	}
	surface.WaitReady(ctx, resourceTimeout)

	scale := input.Scale
	if scale == 0 {
		scale = DefaultScale
	}

	result := &Result{}
	if input.Debug {
		result.HTML = doc
	}

	orientation := OrientationPortrait
	if input.Page != nil && input.Page.Orientation != "" {
		orientation = input.Page.Orientation
	}

	switch input.OutputMode {
	case OutputModeNativePrint:
		outputPath := input.OutputPath
		if outputPath == "" {
			outputPath = defaultOutputPath
		}
		if err := nativePrint(ctx, surface, geom, scale, outputPath, s.download, s.cfg.logger); err != nil {
			return nil, err
		}

	default: // OutputModeBytes
		sink, err := s.newSink(orientation, geom.pageWidthMM, geom.pageHeightMM)
		if err != nil {
			return nil, newGenerationError(PhasePDFAssembly, err)
		}
		pdf, err := capturePages(ctx, surface, sink, geom, scale, s.cfg.logger)
		if err != nil {
			return nil, err
		}
		result.PDF = pdf
	}

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}
