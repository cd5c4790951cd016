package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sumai-cli/internal/interfaces"
)

func baseData() interfaces.ViewData {
	return interfaces.ViewData{
		Tone:    "Casual",
		Length:  "Medium",
		Purpose: "TL;DR",
	}
}

func renderDefault(t *testing.T, data interfaces.ViewData) string {
	t.Helper()
	p := NewProcessor()
	tmpl, err := p.LoadTemplate("")
	require.NoError(t, err)
	out, err := p.Execute(tmpl, data)
	require.NoError(t, err)
	return out
}

func TestDefaultView_EmptyState(t *testing.T) {
	out := renderDefault(t, baseData())

	assert.Contains(t, out, "Your summary will appear here after generation")
	assert.Contains(t, out, "Paste or type your long text here...")
	assert.Contains(t, out, "Purpose: TL;DR")
	assert.Contains(t, out, "(light mode)")
	assert.NotContains(t, out, "Generating Summary...")
}

func TestDefaultView_SummaryKeepsLineBreaks(t *testing.T) {
	data := baseData()
	data.Text = "Some input"
	data.HasSummary = true
	data.Summary = "Key Points:\n• First point.\n• Second point."

	out := renderDefault(t, data)

	lines := strings.Split(out, "\n")
	var found []string
	for _, line := range lines {
		for _, want := range []string{"Key Points:", "• First point.", "• Second point."} {
			if strings.Contains(line, want) {
				found = append(found, want)
			}
		}
	}
	assert.Equal(t, []string{"Key Points:", "• First point.", "• Second point."}, found)
	assert.NotContains(t, out, "Your summary will appear here")
}

func TestDefaultView_BusyAndNotice(t *testing.T) {
	data := baseData()
	data.Text = "Some input"
	data.Busy = true
	data.Notice = "Please select a .txt file."
	data.Dark = true

	out := renderDefault(t, data)

	assert.Contains(t, out, "Generating Summary...")
	assert.Contains(t, out, "Please select a .txt file.")
	assert.Contains(t, out, "(dark mode)")
}

func TestDefaultView_InputStats(t *testing.T) {
	data := baseData()
	data.Text = "three small words"
	data.Source = "notes.txt"
	data.CanGenerate = true

	out := renderDefault(t, data)

	assert.Contains(t, out, "3 words, 17 characters")
	assert.Contains(t, out, "loaded from notes.txt")
	assert.Contains(t, out, "Ready to generate")
}

func TestProcessor_LoadTemplate_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{ .Tone | lower }}|{{ if .HasSummary }}{{ .Summary }}{{ else }}-{{ end }}`), 0644))

	p := NewProcessor()
	tmpl, err := p.LoadTemplate(path)
	require.NoError(t, err)

	data := baseData()
	out, err := p.Execute(tmpl, data)
	require.NoError(t, err)
	assert.Equal(t, "casual|-", out)

	data.HasSummary = true
	data.Summary = "done"
	out, err = p.Execute(tmpl, data)
	require.NoError(t, err)
	assert.Equal(t, "casual|done", out)
}

func TestProcessor_LoadTemplate_Errors(t *testing.T) {
	p := NewProcessor()

	_, err := p.LoadTemplate(filepath.Join(t.TempDir(), "missing.tmpl"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{ .Summary `), 0644))
	_, err = p.LoadTemplate(path)
	assert.Error(t, err)
}

func TestProcessor_Execute_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{ .Missing }}`), 0644))

	p := NewProcessor()
	tmpl, err := p.LoadTemplate(path)
	require.NoError(t, err)

	_, err = p.Execute(tmpl, baseData())
	assert.Error(t, err)
}

func TestHelperFunctions(t *testing.T) {
	assert.Equal(t, "hello", truncateFunc(10, "hello"))
	assert.Equal(t, "hello w...", truncateFunc(10, "hello world!"))
	assert.Equal(t, "he", truncateFunc(2, "hello"))
	assert.Equal(t, "héé...", truncateFunc(6, "héééééé"))

	assert.Equal(t, "  a\n\n  b", indentFunc(2, "a\n\nb"))
	assert.Equal(t, "a", indentFunc(0, "a"))

	assert.Equal(t, 0, wordCountFunc("  "))
	assert.Equal(t, 4, wordCountFunc("one two\nthree\tfour"))
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "light", ThemeFor(false).Name)
	assert.Equal(t, "dark", ThemeFor(true).Name)
	assert.NotEqual(t, LightTheme().Title.GetForeground(), DarkTheme().Title.GetForeground())
}

func TestView_RenderSkipsIdenticalFrames(t *testing.T) {
	var buf bytes.Buffer
	v, err := NewView(NewProcessor(), "", &buf)
	require.NoError(t, err)

	data := baseData()
	require.NoError(t, v.Render(data))
	first := buf.Len()
	require.NoError(t, v.Render(data))
	assert.Equal(t, first, buf.Len())

	data.Text = "changed"
	require.NoError(t, v.Render(data))
	assert.Greater(t, buf.Len(), first)
}
