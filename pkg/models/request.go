package models

import "time"

// SessionRequest carries the command line state used to start an interactive session
type SessionRequest struct {
	ConfigPath   string
	Endpoint     string
	File         string
	Theme        string
	NumberSelect bool
	Timeout      time.Duration
	LogLevel     string

	// Option overrides; empty means "use the configured default"
	Tone    string
	Length  string
	Purpose string
}

// SummaryRequest represents a one-shot, non-interactive summarization
type SummaryRequest struct {
	Text          string
	File          string
	FromClipboard bool
	FromStdin     bool
	Target        string
	ConfigPath    string
	Endpoint      string
	Timeout       time.Duration
	LogLevel      string

	Tone    string
	Length  string
	Purpose string
}

// NewSessionRequest creates a SessionRequest with default values
func NewSessionRequest() *SessionRequest {
	return &SessionRequest{}
}

// NewSummaryRequest creates a SummaryRequest with default values
func NewSummaryRequest() *SummaryRequest {
	return &SummaryRequest{}
}
