package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	tpl2pdf "github.com/avelar/go-tpl2pdf"
	"github.com/avelar/go-tpl2pdf/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no template file specified")
	ErrReadTemplate   = errors.New("failed to read template file")
	ErrReadData       = errors.New("failed to read data file")
	ErrReadBand       = errors.New("failed to read header/footer file")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// filePermissions for generated artifacts: owner read+write, others read.
const filePermissions = 0o644

// run executes one generation: template file + optional data file -> PDF.
func run(flags *cliFlags, args []string) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return ErrNoInput
	}

	cfg := DefaultConfig()
	if flags.config != "" {
		loaded, err := LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	mergeFlags(flags, cfg)

	templatePath := args[0]
	template, err := os.ReadFile(templatePath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadTemplate, err)
	}

	data := map[string]any{}
	if len(args) > 1 {
		payload, err := os.ReadFile(args[1]) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadData, err)
		}
		if err := yamlutil.Unmarshal(payload, &data); err != nil {
			return fmt.Errorf("%w: %v", ErrReadData, err)
		}
	}

	input, err := buildInput(cfg, string(template))
	if err != nil {
		return err
	}
	input.Data = data
	input.Debug = flags.debugHTML != ""

	outputPath := cfg.Output.Path
	if outputPath == "" {
		outputPath = defaultOutputFor(templatePath)
	}
	if input.OutputMode == tpl2pdf.OutputModeNativePrint {
		input.OutputPath = outputPath
	}

	opts, err := serviceOptions(cfg, flags)
	if err != nil {
		return err
	}

	svc := tpl2pdf.New(opts...)
	defer func() { _ = svc.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	result, err := svc.Generate(ctx, input)
	if err != nil {
		return err
	}

	if input.Debug && result.HTML != "" {
		// #nosec G306 -- debug HTML is meant to be readable
		if err := os.WriteFile(flags.debugHTML, []byte(result.HTML), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", tpl2pdf.ErrWritePDF, err)
		}
	}

	if input.OutputMode != tpl2pdf.OutputModeNativePrint {
		if err := tpl2pdf.SaveFile(result.PDF, outputPath); err != nil {
			return err
		}
	}

	if !flags.quiet {
		if flags.verbose {
			fmt.Printf("%s -> %s (%v)\n", templatePath, outputPath, time.Since(start).Round(time.Millisecond))
		} else {
			fmt.Printf("Created %s\n", outputPath)
		}
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *Config) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.nativePrint {
		cfg.Output.Mode = tpl2pdf.OutputModeNativePrint
	}
	if flags.pageFormat != "" {
		cfg.Page.Format = flags.pageFormat
	}
	if flags.orientation != "" {
		cfg.Page.Orientation = flags.orientation
	}
	if flags.margin > 0 {
		cfg.Page.Margin = flags.margin
	}
	if flags.headerFile != "" {
		cfg.Header.File = flags.headerFile
	}
	if flags.footerFile != "" {
		cfg.Footer.File = flags.footerFile
	}
	if flags.markdown {
		cfg.Markdown = true
	}
	if flags.scale > 0 {
		cfg.Scale = flags.scale
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
}

// buildInput assembles the library input from resolved configuration.
func buildInput(cfg *Config, template string) (tpl2pdf.Input, error) {
	input := tpl2pdf.Input{
		Template:   template,
		Markdown:   cfg.Markdown,
		OutputMode: cfg.Output.Mode,
		Scale:      cfg.Scale,
	}

	if cfg.Page.Format != "" || cfg.Page.Orientation != "" || cfg.Page.Margin > 0 {
		ps := tpl2pdf.DefaultPageSettings()
		if cfg.Page.Format != "" {
			ps.Format = cfg.Page.Format
		}
		if cfg.Page.Orientation != "" {
			ps.Orientation = cfg.Page.Orientation
		}
		if cfg.Page.Margin > 0 {
			ps.Margins = tpl2pdf.UniformMargins(cfg.Page.Margin)
		}
		input.Page = ps
	}

	if cfg.Header.File != "" {
		content, err := os.ReadFile(cfg.Header.File) // #nosec G304 -- user-provided path
		if err != nil {
			return input, fmt.Errorf("%w: %v", ErrReadBand, err)
		}
		input.HeaderHTML = string(content)
		input.HeaderHeightMM = cfg.Header.HeightMM
	}
	if cfg.Footer.File != "" {
		content, err := os.ReadFile(cfg.Footer.File) // #nosec G304 -- user-provided path
		if err != nil {
			return input, fmt.Errorf("%w: %v", ErrReadBand, err)
		}
		input.FooterHTML = string(content)
		input.FooterHeightMM = cfg.Footer.HeightMM
	}

	if cfg.CSS.File != "" {
		content, err := os.ReadFile(cfg.CSS.File) // #nosec G304 -- user-provided path
		if err != nil {
			return input, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		input.CSS = string(content)
	}

	return input, nil
}

// serviceOptions translates CLI/config settings into library options.
func serviceOptions(cfg *Config, flags *cliFlags) ([]tpl2pdf.Option, error) {
	var opts []tpl2pdf.Option

	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, cfg.Timeout)
		}
		opts = append(opts, tpl2pdf.WithTimeout(d))
	}

	if flags.verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			opts = append(opts, tpl2pdf.WithLogger(logger))
		}
	}

	return opts, nil
}

// defaultOutputFor derives the PDF output path from the template file name.
func defaultOutputFor(templatePath string) string {
	ext := filepath.Ext(templatePath)
	base := strings.TrimSuffix(filepath.Base(templatePath), ext)
	return filepath.Join(filepath.Dir(templatePath), base+".pdf")
}
