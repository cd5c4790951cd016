package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"sumai-cli/internal/interfaces"
)

// DownloadName is the file name a downloaded summary is saved under
const DownloadName = "summary.txt"

// OutputHandler implements the OutputHandler interface
type OutputHandler struct {
	stdout io.Writer
}

// NewOutputHandler creates a new output handler writing to os.Stdout
func NewOutputHandler() interfaces.OutputHandler {
	return &OutputHandler{stdout: os.Stdout}
}

// WriteToClipboard copies content to the system clipboard
func (h *OutputHandler) WriteToClipboard(content string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.WriteAll(content)
}

// WriteToStdout writes content to standard output
func (h *OutputHandler) WriteToStdout(content string) error {
	_, err := fmt.Fprintln(h.stdout, content)
	return err
}

// WriteToFile writes content to the specified file path as plain text
func (h *OutputHandler) WriteToFile(content string, path string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// ReadClipboard returns the current clipboard text
func ReadClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.ReadAll()
}

// DownloadPath picks where the next summary.txt goes inside dir. With overwrite
// the name is always summary.txt; otherwise the first free name of
// summary.txt, summary (1).txt, summary (2).txt, ... is used.
func DownloadPath(dir string, overwrite bool) string {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, DownloadName)
	if overwrite {
		return path
	}

	ext := filepath.Ext(DownloadName)
	stem := strings.TrimSuffix(DownloadName, ext)
	for i := 1; fileExists(path); i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
