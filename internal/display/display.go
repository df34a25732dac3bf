// Package display shows rendered figures to the user.
package display

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvandessel/rateplot/internal/render"
)

// Viewer names accepted by ByName.
const (
	NameWindow = "window"
	NameSystem = "system"
	NameNone   = "none"
)

// Viewer presents one or more figures. Show may block until the user
// dismisses the display or ctx is cancelled.
type Viewer interface {
	Show(ctx context.Context, figs ...*render.Figure) error
}

// Nop discards figures. It is used for headless runs.
type Nop struct{}

// Show implements Viewer.
func (Nop) Show(context.Context, ...*render.Figure) error { return nil }

// Names lists the viewers ByName understands.
func Names() []string {
	return []string{NameWindow, NameSystem, NameNone}
}

// ParseName normalises a viewer name. An empty name selects the window
// viewer.
func ParseName(name string) (string, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "":
		return NameWindow, nil
	case NameWindow, NameSystem, NameNone:
		return n, nil
	default:
		return "", fmt.Errorf("unknown viewer: %s (valid: %s)", name, strings.Join(Names(), ", "))
	}
}

// ByName returns the viewer for a configuration value.
func ByName(name string) (Viewer, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	switch n {
	case NameSystem:
		return NewSystemViewer(), nil
	case NameNone:
		return Nop{}, nil
	default:
		return NewFyneViewer("rateplot"), nil
	}
}
