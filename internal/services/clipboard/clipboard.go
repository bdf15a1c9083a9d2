// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const errorCopyFailedFormat = "copying tree to clipboard: %w"

// ErrUnavailable reports a platform without a usable clipboard backend.
var ErrUnavailable = errors.New("clipboard is unavailable on this system")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeText   func(string) error
	unsupported func() bool
}

// NewService returns a Service backed by the system clipboard.
func NewService() *Service {
	return &Service{
		writeText:   clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// Copy writes text to the clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported != nil && service.unsupported() {
		return ErrUnavailable
	}
	if writeError := service.writeText(text); writeError != nil {
		return fmt.Errorf(errorCopyFailedFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
