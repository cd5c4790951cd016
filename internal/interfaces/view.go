package interfaces

import "text/template"

// ViewData contains all variables available to the view template
type ViewData struct {
	Text        string
	Source      string
	Tone        string
	Length      string
	Purpose     string
	Busy        bool
	CanGenerate bool
	HasSummary  bool
	Summary     string
	Notice      string
	Dark        bool
}

// ViewRenderer handles view template loading and execution
type ViewRenderer interface {
	// LoadTemplate loads a template from the specified path, or the built-in one when empty
	LoadTemplate(path string) (*template.Template, error)

	// Execute executes a template with the provided data
	Execute(tmpl *template.Template, data ViewData) (string, error)
}
