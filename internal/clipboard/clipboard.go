// Package clipboard reads the system text clipboard.
package clipboard

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ReadText returns the current text clipboard contents. An empty or
// whitespace-only clipboard is an error, so callers can report
// "nothing to save" before touching the filesystem.
func ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard: read: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("clipboard: no text content")
	}
	return text, nil
}
