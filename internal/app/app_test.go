package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sumai-cli/internal/session"
	"sumai-cli/pkg/models"
)

type recordingOutput struct {
	stdout       []string
	clipboard    string
	clipboardErr error
	files        map[string]string
}

func (r *recordingOutput) WriteToClipboard(content string) error {
	if r.clipboardErr != nil {
		return r.clipboardErr
	}
	r.clipboard = content
	return nil
}

func (r *recordingOutput) WriteToStdout(content string) error {
	r.stdout = append(r.stdout, content)
	return nil
}

func (r *recordingOutput) WriteToFile(content string, path string) error {
	if r.files == nil {
		r.files = map[string]string{}
	}
	r.files[path] = content
	return nil
}

func noClipboard() (string, error) {
	return "", errors.New("clipboard not available")
}

// isolate keeps the user's config file and environment out of the test
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"SUMAI_ENDPOINT", "SUMAI_TARGET", "SUMAI_DEFAULT_TONE", "SUMAI_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func summaryServer(t *testing.T, status int, body string, gotBody *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotBody != nil {
			raw, _ := io.ReadAll(r.Body)
			*gotBody = string(raw)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSummarize_ToStdout(t *testing.T) {
	isolate(t)
	var gotBody string
	srv := summaryServer(t, http.StatusOK, `{"summary":"Short and sweet."}`, &gotBody)

	request := models.NewSummaryRequest()
	request.Text = "A long article"
	request.Endpoint = srv.URL + "/summarize"
	request.Tone = "Formal"
	request.Purpose = "Key Points"

	out := &recordingOutput{}
	var status bytes.Buffer
	err := summarize(context.Background(), request, strings.NewReader(""), &status, out, noClipboard)

	require.NoError(t, err)
	assert.Equal(t, []string{"Short and sweet."}, out.stdout)
	assert.Equal(t, `{"text":"A long article","tone":"formal","length":"medium","purpose":"keypoints"}`, gotBody)
	assert.Empty(t, status.String())
}

func TestSummarize_ToFile(t *testing.T) {
	isolate(t)
	srv := summaryServer(t, http.StatusOK, `{"summary":"done"}`, nil)
	path := filepath.Join(t.TempDir(), "out.txt")

	request := models.NewSummaryRequest()
	request.Text = "text"
	request.Endpoint = srv.URL
	request.Target = "file:" + path

	out := &recordingOutput{}
	var status bytes.Buffer
	require.NoError(t, summarize(context.Background(), request, strings.NewReader(""), &status, out, noClipboard))

	assert.Equal(t, "done", out.files[path])
	assert.Contains(t, status.String(), "Summary written to "+path)
}

func TestSummarize_RequestFailure(t *testing.T) {
	isolate(t)
	srv := summaryServer(t, http.StatusInternalServerError, `{"detail":"Summarization model not loaded"}`, nil)

	request := models.NewSummaryRequest()
	request.Text = "text"
	request.Endpoint = srv.URL

	out := &recordingOutput{}
	err := summarize(context.Background(), request, strings.NewReader(""), io.Discard, out, noClipboard)

	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrServer))
	assert.Contains(t, session.UserMessage(err), "Backend server error")
	assert.Empty(t, out.stdout)
}

func TestSummarize_InvalidOption(t *testing.T) {
	isolate(t)
	request := models.NewSummaryRequest()
	request.Text = "text"
	request.Tone = "snarky"

	err := summarize(context.Background(), request, strings.NewReader(""), io.Discard, &recordingOutput{}, noClipboard)
	assert.Error(t, err)
}

func TestResolveText(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("\xef\xbb\xbffrom file"), 0644))
	pdf := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0644))

	clip := func(s string) func() (string, error) {
		return func() (string, error) { return s, nil }
	}

	tests := []struct {
		name      string
		request   models.SummaryRequest
		stdin     string
		clipboard func() (string, error)
		want      string
		wantErr   error
	}{
		{name: "argument", request: models.SummaryRequest{Text: "from arg"}, want: "from arg"},
		{name: "text file", request: models.SummaryRequest{File: txt}, want: "from file"},
		{name: "pdf file", request: models.SummaryRequest{File: pdf}, wantErr: session.ErrUnsupportedFileType},
		{name: "missing file", request: models.SummaryRequest{File: filepath.Join(dir, "gone.txt")}, wantErr: session.ErrFileRead},
		{name: "stdin", request: models.SummaryRequest{FromStdin: true}, stdin: "piped\ntext", want: "piped\ntext"},
		{name: "clipboard only", request: models.SummaryRequest{FromClipboard: true}, clipboard: clip("  copied  "), want: "copied"},
		{name: "clipboard appended", request: models.SummaryRequest{Text: "base", FromClipboard: true}, clipboard: clip("copied"), want: "base\n\ncopied"},
		{name: "whitespace only", request: models.SummaryRequest{Text: "  \n "}, wantErr: session.ErrEmptyDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readClipboard := tt.clipboard
			if readClipboard == nil {
				readClipboard = noClipboard
			}
			request := tt.request

			got, err := resolveText(&request, strings.NewReader(tt.stdin), readClipboard)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveText_ClipboardErrors(t *testing.T) {
	_, err := resolveText(&models.SummaryRequest{FromClipboard: true}, strings.NewReader(""), noClipboard)
	assert.Error(t, err)

	_, err = resolveText(&models.SummaryRequest{FromClipboard: true}, strings.NewReader(""), func() (string, error) { return " ", nil })
	assert.EqualError(t, err, "clipboard is empty")
}

func TestDeliver(t *testing.T) {
	t.Run("clipboard", func(t *testing.T) {
		out := &recordingOutput{}
		var status bytes.Buffer
		require.NoError(t, deliver("sum", "clipboard", out, &status))
		assert.Equal(t, "sum", out.clipboard)
		assert.Contains(t, status.String(), "copied to clipboard")
	})

	t.Run("clipboard failure falls back to stdout", func(t *testing.T) {
		out := &recordingOutput{clipboardErr: errors.New("no display")}
		var status bytes.Buffer
		require.NoError(t, deliver("sum", "clipboard", out, &status))
		assert.Equal(t, []string{"sum"}, out.stdout)
		assert.Contains(t, status.String(), session.NoticeClipboard)
	})

	t.Run("default is stdout", func(t *testing.T) {
		out := &recordingOutput{}
		require.NoError(t, deliver("sum", "", out, io.Discard))
		assert.Equal(t, []string{"sum"}, out.stdout)
	})

	t.Run("unknown target", func(t *testing.T) {
		assert.Error(t, deliver("sum", "printer", &recordingOutput{}, io.Discard))
	})
}

func TestHealth(t *testing.T) {
	isolate(t)
	srv := summaryServer(t, http.StatusOK, `{"status":"healthy","model_loaded":true,"device":"GPU","message":"ok"}`, nil)

	var out bytes.Buffer
	require.NoError(t, health(context.Background(), "", srv.URL+"/summarize", 0, &out))

	assert.Contains(t, out.String(), "Service: healthy ("+srv.URL+"/health)")
	assert.Contains(t, out.String(), "Model loaded: yes")
	assert.Contains(t, out.String(), "Device: GPU")
}

func TestHealth_Unhealthy(t *testing.T) {
	isolate(t)
	srv := summaryServer(t, http.StatusServiceUnavailable, `{"detail":"loading"}`, nil)

	err := health(context.Background(), "", srv.URL, 0, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check failed")
}

func TestListOptions(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("default_purpose = \"explainer\"\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, listOptions(configPath, &out))

	assert.Contains(t, out.String(), "  - Casual [casual] (default)")
	assert.Contains(t, out.String(), "  - Explainer [explainer] (default)")
	assert.Contains(t, out.String(), "  - TL;DR [tldr]\n")
}

func TestOptionFlags(t *testing.T) {
	flags, err := optionFlags("", "FRIENDLY", "short", "tl;dr")
	require.NoError(t, err)
	assert.Equal(t, "friendly", flags["default_tone"])
	assert.Equal(t, "short", flags["default_length"])
	assert.Equal(t, "tldr", flags["default_purpose"])

	_, err = optionFlags("", "", "", "highlights")
	assert.Error(t, err)
}

func TestContractPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, "~", contractPath(home))
	assert.Equal(t, "~/.config/sumai/config.toml", contractPath(filepath.Join(home, ".config", "sumai", "config.toml")))
	assert.Equal(t, "/etc/sumai.toml", contractPath("/etc/sumai.toml"))
	assert.Equal(t, home+"x/config.toml", contractPath(home+"x/config.toml"))
}
