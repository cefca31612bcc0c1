// Package share copies a win brag to the system clipboard.
package share

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnsupported means no clipboard utility is available. Callers should
// show the text instead.
var ErrUnsupported = errors.New("clipboard is not available")

// Clipboard writes to the system clipboard.
type Clipboard struct {
	write       func(string) error
	unsupported bool
}

func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

// Copy puts text on the clipboard.
func (c *Clipboard) Copy(text string) error {
	if c.unsupported {
		return ErrUnsupported
	}
	if err := c.write(text); err != nil {
		return errors.Join(ErrUnsupported, err)
	}
	return nil
}

// Message builds the shared text: title, brag line and an optional link,
// one per line.
func Message(title, text, url string) string {
	parts := []string{title, text}
	if url != "" {
		parts = append(parts, url)
	}
	return strings.Join(parts, "\n")
}
