package display

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/nvandessel/rateplot/internal/render"
)

// SystemViewer hands each figure to the operating system's image viewer.
// It does not block; unsaved figures are written to a temporary file first.
type SystemViewer struct {
	// TempDir holds unsaved figures. Empty uses os.TempDir.
	TempDir string

	goos  string
	start func(name string, args ...string) error
}

// NewSystemViewer returns a viewer using xdg-open, open or start.
func NewSystemViewer() *SystemViewer {
	return &SystemViewer{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Show implements Viewer.
func (v *SystemViewer) Show(ctx context.Context, figs ...*render.Figure) error {
	for _, f := range figs {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := f.Path
		if path == "" {
			var err error
			path, err = v.writeTemp(f)
			if err != nil {
				return err
			}
		}
		name, args, err := openCommand(v.goos, path)
		if err != nil {
			return err
		}
		if err := v.start(name, args...); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	return nil
}

func (v *SystemViewer) writeTemp(f *render.Figure) (string, error) {
	data, err := f.PNG()
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(v.TempDir, "rateplot-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp figure: %w", err)
	}
	defer tmp.Close()
	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("write temp figure: %w", err)
	}
	return tmp.Name(), nil
}

// openCommand returns the command that opens target with the default
// application. It supports Linux (xdg-open), macOS (open), and Windows
// (cmd start).
func openCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
