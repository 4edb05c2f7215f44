package tpl2pdf

import (
	"fmt"
	"os"
)

// SaveFile hands an already-produced document to the filesystem. Purely a
// hand-off; it adds no content of its own.
func SaveFile(data []byte, path string) error {
	// #nosec G306 -- generated documents are intended to be readable
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}
