// Package assets provides the embedded stylesheets for document
// composition.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
)

//go:embed styles/*
var styles embed.FS

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// baseStyle caches the combined base stylesheet.
var baseStyle = sync.OnceValue(func() string {
	base, err := LoadStyle("base")
	if err != nil {
		panic("embedded base style missing: " + err.Error())
	}
	highlight, err := LoadStyle("highlight")
	if err != nil {
		panic("embedded highlight style missing: " + err.Error())
	}
	return base + "\n" + highlight
})

// BaseStyle returns the reset/base style layer embedded in every composed
// document.
func BaseStyle() string {
	return baseStyle()
}

// LoadStyle loads an embedded CSS file by name.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	if err := validateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// validateAssetName rejects names with path separators or traversal.
func validateAssetName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
