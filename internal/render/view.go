package render

import (
	"fmt"
	"io"
	"sync"
	"text/template"

	"sumai-cli/internal/interfaces"
)

// View renders view data to a writer with a preloaded template
type View struct {
	renderer interfaces.ViewRenderer
	tmpl     *template.Template
	out      io.Writer

	mu   sync.Mutex
	last string
}

// NewView loads the template at path (built-in when empty) and renders to out
func NewView(renderer interfaces.ViewRenderer, path string, out io.Writer) (*View, error) {
	tmpl, err := renderer.LoadTemplate(path)
	if err != nil {
		return nil, err
	}
	return &View{renderer: renderer, tmpl: tmpl, out: out}, nil
}

// Render writes the view for data. Identical consecutive frames are written once.
func (v *View) Render(data interfaces.ViewData) error {
	frame, err := v.renderer.Execute(v.tmpl, data)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if frame == v.last {
		return nil
	}
	v.last = frame

	if _, err := fmt.Fprintln(v.out, frame); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	return nil
}
