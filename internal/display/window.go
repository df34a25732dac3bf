package display

import (
	"context"
	"fmt"
	"image"
	"sync"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/nvandessel/rateplot/internal/render"
)

// FyneViewer shows figures in a native window and blocks until it closes.
//
// A fyne application can only be run once per process, so a second Show
// returns an error. Callers that display several figures pass them all to a
// single Show call; they are laid out as tabs.
type FyneViewer struct {
	title string

	mu   sync.Mutex
	used bool
}

// NewFyneViewer returns a window viewer with the given window title.
func NewFyneViewer(title string) *FyneViewer {
	return &FyneViewer{title: title}
}

// Show implements Viewer.
func (v *FyneViewer) Show(ctx context.Context, figs ...*render.Figure) error {
	if len(figs) == 0 {
		return nil
	}

	v.mu.Lock()
	if v.used {
		v.mu.Unlock()
		return fmt.Errorf("window viewer already shown once in this process")
	}
	v.used = true
	v.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	a := app.New()
	w := a.NewWindow(v.title)
	w.SetContent(figureContent(figs))
	w.Resize(windowSize(figs))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(func() { a.Quit() })
		case <-done:
		}
	}()

	w.ShowAndRun()
	return nil
}

func figureContent(figs []*render.Figure) fyne.CanvasObject {
	if len(figs) == 1 {
		return figureImage(figs[0].Image)
	}
	items := make([]*container.TabItem, 0, len(figs))
	for _, f := range figs {
		items = append(items, container.NewTabItem(f.Name, figureImage(f.Image)))
	}
	tabs := container.NewAppTabs(items...)
	tabs.SetTabLocation(container.TabLocationTop)
	return tabs
}

func figureImage(img image.Image) *canvas.Image {
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	b := img.Bounds()
	c.SetMinSize(fyne.NewSize(float32(b.Dx())/2, float32(b.Dy())/2))
	return c
}

// windowSize fits the largest figure at its native pixel size.
func windowSize(figs []*render.Figure) fyne.Size {
	var w, h int
	for _, f := range figs {
		b := f.Image.Bounds()
		w = max(w, b.Dx())
		h = max(h, b.Dy())
	}
	if len(figs) > 1 {
		h += 40
	}
	return fyne.NewSize(float32(w), float32(h))
}
