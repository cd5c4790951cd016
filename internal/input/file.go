// Package input decides how a user-selected file becomes document text.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileKind is the outcome of classifying a selected file by its name
type FileKind int

const (
	// KindRejected files are neither supported nor recognized
	KindRejected FileKind = iota
	// KindText files are read and decoded as UTF-8
	KindText
	// KindUnsupported files are recognized but not yet supported
	KindUnsupported
)

// AcceptFilter lists the suffixes the file picker advertises
const AcceptFilter = ".txt,.pdf"

var (
	textSuffixes        = []string{".txt"}
	unsupportedSuffixes = []string{".pdf"}
)

func (k FileKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUnsupported:
		return "unsupported"
	default:
		return "rejected"
	}
}

// Classify maps a file name to its kind by suffix, ignoring case
func Classify(name string) FileKind {
	lower := strings.ToLower(name)
	for _, suffix := range textSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return KindText
		}
	}
	for _, suffix := range unsupportedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return KindUnsupported
		}
	}
	return KindRejected
}

// ReadText reads the whole file and decodes it as UTF-8. A leading byte order
// mark is dropped and invalid byte sequences become U+FFFD.
func ReadText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return DecodeText(raw)
}

// DecodeText decodes raw bytes the same way ReadText does
func DecodeText(raw []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(decoded), nil
}
