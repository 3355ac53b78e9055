// Package clipboard copies rendered reports to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/temirov/tokenum/internal/types"
)

const (
	copyOperation = "copy report to"
	copySubject   = "clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll func(text string) error
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{writeAll: clipboard.WriteAll}
}

// NewServiceWithWriter constructs a service that hands text to writeAll.
func NewServiceWithWriter(writeAll func(text string) error) *Service {
	return &Service{writeAll: writeAll}
}

// Copy writes text to the clipboard. Failures are reported as IO errors.
func (service *Service) Copy(text string) error {
	writeAll := service.writeAll
	if writeAll == nil {
		writeAll = clipboard.WriteAll
	}
	if err := writeAll(text); err != nil {
		return types.NewIOError(copyOperation, copySubject, err)
	}
	return nil
}

var _ Copier = (*Service)(nil)
