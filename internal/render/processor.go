// Package render turns session state into terminal output using a text
// template and the active lipgloss theme.
package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"sumai-cli/internal/interfaces"
)

//go:embed view.tmpl
var defaultView string

// Processor implements the ViewRenderer interface
type Processor struct{}

// NewProcessor creates a new view processor
func NewProcessor() *Processor {
	return &Processor{}
}

// LoadTemplate loads the view template at path, or the built-in one when path is empty
func (p *Processor) LoadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return p.parse("view", defaultView)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return p.parse(filepath.Base(path), string(content))
}

func (p *Processor) parse(name, content string) (*template.Template, error) {
	// Helpers are registered before parsing; theme styles are rebound per execution
	tmpl := template.New(name).Funcs(helperFuncs(LightTheme()))

	tmpl, err := tmpl.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Execute executes a template with the provided data, styled for data.Dark
func (p *Processor) Execute(tmpl *template.Template, data interfaces.ViewData) (string, error) {
	themed, err := tmpl.Clone()
	if err != nil {
		return "", fmt.Errorf("failed to clone template: %w", err)
	}
	themed.Funcs(helperFuncs(ThemeFor(data.Dark)))

	var buf strings.Builder
	if err := themed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// helperFuncs merges sprig with our text and style helpers
func helperFuncs(theme Theme) template.FuncMap {
	funcMap := sprig.TxtFuncMap()

	customFuncs := template.FuncMap{
		"truncate":  truncateFunc,
		"indent":    indentFunc,
		"wordCount": wordCountFunc,
		"runeCount": utf8.RuneCountInString,

		"title":       styleFunc(theme.Title),
		"heading":     styleFunc(theme.Heading),
		"muted":       styleFunc(theme.Muted),
		"accent":      styleFunc(theme.Accent),
		"busy":        styleFunc(theme.Busy),
		"notice":      styleFunc(theme.Notice),
		"box":         styleFunc(theme.Box),
		"placeholder": styleFunc(theme.Placeholder),
	}

	for name, fn := range customFuncs {
		funcMap[name] = fn
	}
	return funcMap
}

func styleFunc(style interface{ Render(...string) string }) func(string) string {
	return func(s string) string {
		return style.Render(s)
	}
}

// truncateFunc shortens text to length runes, ending in "..." when cut
func truncateFunc(length int, text string) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}

	if length <= 3 {
		return string(runes[:length])
	}

	return string(runes[:length-3]) + "..."
}

// indentFunc indents each non-empty line of text by the specified number of spaces
func indentFunc(spaces int, text string) string {
	if spaces <= 0 {
		return text
	}

	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = indent + line
		}
	}

	return strings.Join(lines, "\n")
}

func wordCountFunc(text string) int {
	return len(strings.Fields(text))
}
