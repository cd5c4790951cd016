package session

import (
	"errors"
	"fmt"

	"sumai-cli/internal/client"
)

// Error types for the different categories of failures
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileRead            = errors.New("file read error")
	ErrNetworkUnreachable  = errors.New("network unreachable")
	ErrServer              = errors.New("server error")
	ErrClient              = errors.New("client error")
	ErrUnknownRequest      = errors.New("request error")
	ErrClipboardWrite      = errors.New("clipboard write error")
	ErrInvalidOption       = errors.New("invalid option")
)

// Trigger rejections. These leave the session untouched.
var (
	ErrEmptyDocument   = errors.New("there is no text to summarize")
	ErrRequestInFlight = errors.New("a summary is already being generated")
	ErrNoSummary       = errors.New("there is no summary yet")
)

// User-facing notices
const (
	NoticeUnsupportedPDF = "PDF support is coming soon! For now, please use .txt files or paste the text directly."
	NoticeSelectText     = "Please select a .txt file."
	NoticeReadError      = "Error reading text file. Please try again."
	NoticeClipboard      = "Failed to copy to clipboard. Please try again."
)

const requestErrorPrefix = "Error: Unable to generate summary. "

// Error is a classified failure carrying the text shown to the user
type Error struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *Error) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the error's category, so errors.Is(err, ErrServer) works
func (e *Error) Is(target error) bool {
	return target == e.Type
}

// NewRequestError classifies a failed summarization round trip
func NewRequestError(endpoint string, cause error) *Error {
	switch client.KindOf(cause) {
	case client.KindNetwork:
		return &Error{
			Type:     ErrNetworkUnreachable,
			Message:  requestErrorPrefix + fmt.Sprintf("Please check if the summarization service is reachable at %s", endpoint),
			Guidance: "Start the summarization service or point --endpoint / SUMAI_ENDPOINT at a running one.",
			Cause:    cause,
		}
	case client.KindServer:
		return &Error{
			Type:     ErrServer,
			Message:  requestErrorPrefix + "Backend server error. Please check the summarization service configuration (e.g. its API key).",
			Guidance: "The service answered with a server error; check its logs and credentials.",
			Cause:    cause,
		}
	case client.KindClient:
		return &Error{
			Type:     ErrClient,
			Message:  requestErrorPrefix + "Invalid request. Please check your input.",
			Guidance: "The service rejected the request; very long texts and empty texts are refused.",
			Cause:    cause,
		}
	default:
		text := "unknown error"
		if cause != nil {
			text = cause.Error()
		}
		return &Error{
			Type:    ErrUnknownRequest,
			Message: requestErrorPrefix + text,
			Cause:   cause,
		}
	}
}

// NewFileError describes a file selection that could not become document text
func NewFileError(name string, kind error, cause error) *Error {
	switch kind {
	case ErrFileRead:
		return &Error{
			Type:     ErrFileRead,
			Message:  NoticeReadError,
			Guidance: fmt.Sprintf("Ensure '%s' exists and you have read permissions.", name),
			Cause:    cause,
		}
	default:
		return &Error{
			Type:    ErrUnsupportedFileType,
			Message: fileTypeNotice(name),
			Cause:   cause,
		}
	}
}

// NewClipboardError describes a failed clipboard write
func NewClipboardError(cause error) *Error {
	return &Error{
		Type:     ErrClipboardWrite,
		Message:  NoticeClipboard,
		Guidance: "Clipboard access failed. Ensure you're running in a graphical environment or use Download instead.",
		Cause:    cause,
	}
}

// NewOptionError describes an option value outside its enumeration
func NewOptionError(cause error) *Error {
	return &Error{
		Type:    ErrInvalidOption,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// UserMessage returns the plain text meant for the user
func UserMessage(err error) string {
	var sessionErr *Error
	if errors.As(err, &sessionErr) {
		return sessionErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
