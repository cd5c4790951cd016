// Package session holds the client state: the document, the selected options,
// the request state and the last summary. Every mutation is published to
// subscribers as a Snapshot.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sumai-cli/internal/export"
	"sumai-cli/internal/input"
	"sumai-cli/internal/interfaces"
	"sumai-cli/internal/logger"
	"sumai-cli/pkg/models"
)

// State is the request lifecycle as seen by the user
type State int

const (
	StateIdle State = iota
	StateInFlight
	// StateCompleted means a result or an error message is available
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateInFlight:
		return "in_flight"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Snapshot is an immutable copy of the session state
type Snapshot struct {
	Text string
	// Source is the name of the file the text was last loaded from
	Source string
	// FileSelection is the pick waiting to be handled; empty once handled
	FileSelection string
	Options       models.Options
	State         State
	Summary       string
	Notice        string
	Dark          bool
}

// HasSummary reports whether there is a summary (or error message) to show
func (s Snapshot) HasSummary() bool {
	return s.Summary != ""
}

// CanGenerate mirrors the enabled state of the generate trigger
func (s Snapshot) CanGenerate() bool {
	return s.State != StateInFlight && strings.TrimSpace(s.Text) != ""
}

// ViewData converts the snapshot into what the view template renders
func (s Snapshot) ViewData() interfaces.ViewData {
	return interfaces.ViewData{
		Text:        s.Text,
		Source:      s.Source,
		Tone:        s.Options.Tone.Label(),
		Length:      s.Options.Length.Label(),
		Purpose:     s.Options.Purpose.Label(),
		Busy:        s.State == StateInFlight,
		CanGenerate: s.CanGenerate(),
		HasSummary:  s.HasSummary(),
		Summary:     s.Summary,
		Notice:      s.Notice,
		Dark:        s.Dark,
	}
}

// Observer receives a snapshot after every mutation
type Observer func(Snapshot)

// Config carries the session's settings
type Config struct {
	Endpoint          string
	DownloadDir       string
	DownloadOverwrite bool
	Options           models.Options
	Dark              bool
}

// Session is the single owner of the client state. It is safe for concurrent
// use; at most one summarization request is in flight at any time.
type Session struct {
	summarizer interfaces.Summarizer
	output     interfaces.OutputHandler
	cfg        Config
	log        logger.Logger

	mu        sync.Mutex
	text      string
	source    string
	selection string
	opts      models.Options
	busy      bool
	completed bool
	summary   string
	notice    string
	dark      bool

	nextObserver int
	observers    map[int]Observer
}

// New creates a session. Invalid cfg.Options fall back to the defaults.
func New(summarizer interfaces.Summarizer, output interfaces.OutputHandler, cfg Config) *Session {
	opts := cfg.Options
	if opts.Validate() != nil {
		opts = models.DefaultOptions()
	}
	return &Session{
		summarizer: summarizer,
		output:     output,
		cfg:        cfg,
		log:        logger.GetDefault(),
		opts:       opts,
		dark:       cfg.Dark,
		observers:  make(map[int]Observer),
	}
}

// SetLogger replaces the session's logger
func (s *Session) SetLogger(l logger.Logger) {
	s.log = l
}

// Subscribe registers fn for every future mutation and returns a function that removes it
func (s *Session) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	state := StateIdle
	switch {
	case s.busy:
		state = StateInFlight
	case s.completed:
		state = StateCompleted
	}
	return Snapshot{
		Text:          s.text,
		Source:        s.source,
		FileSelection: s.selection,
		Options:       s.opts,
		State:         state,
		Summary:       s.summary,
		Notice:        s.notice,
		Dark:          s.dark,
	}
}

// update applies fn under the lock and publishes the resulting snapshot
func (s *Session) update(fn func()) Snapshot {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
	return snap
}

// SetText replaces the document wholesale
func (s *Session) SetText(text string) {
	s.update(func() {
		s.text = text
		s.source = ""
	})
}

// SelectFile handles a single file pick. Text files replace the document;
// anything else leaves it alone and raises a notice. The pick is cleared
// afterwards in every case so the same file can be chosen again.
func (s *Session) SelectFile(path string) error {
	name := filepath.Base(path)
	s.update(func() { s.selection = path })

	kind := input.Classify(name)
	if kind != input.KindText {
		s.log.Debug("file selection rejected", "file", name, "kind", kind)
		fileErr := NewFileError(name, ErrUnsupportedFileType, nil)
		s.update(func() {
			s.selection = ""
			s.notice = fileErr.Message
		})
		return fileErr
	}

	text, err := input.ReadText(path)
	if err != nil {
		s.log.Warn("failed to read selected file", "file", name, "error", err)
		fileErr := NewFileError(name, ErrFileRead, err)
		s.update(func() {
			s.selection = ""
			s.notice = fileErr.Message
		})
		return fileErr
	}

	s.log.Debug("file loaded", "file", name, "chars", len(text))
	s.update(func() {
		s.selection = ""
		s.text = text
		s.source = name
		s.notice = ""
	})
	return nil
}

func fileTypeNotice(name string) string {
	if input.Classify(name) == input.KindUnsupported {
		return NoticeUnsupportedPDF
	}
	return NoticeSelectText
}

// SetTone selects the tone for future requests
func (s *Session) SetTone(t models.Tone) error {
	return s.setOption(func(o *models.Options) { o.Tone = t })
}

// SetLength selects the length for future requests
func (s *Session) SetLength(l models.Length) error {
	return s.setOption(func(o *models.Options) { o.Length = l })
}

// SetPurpose selects the purpose for future requests
func (s *Session) SetPurpose(p models.Purpose) error {
	return s.setOption(func(o *models.Options) { o.Purpose = p })
}

func (s *Session) setOption(apply func(*models.Options)) error {
	s.mu.Lock()
	next := s.opts
	s.mu.Unlock()

	apply(&next)
	if err := next.Validate(); err != nil {
		return NewOptionError(err)
	}

	// Apply onto the live value so concurrent setters for other fields are kept
	s.update(func() { apply(&s.opts) })
	return nil
}

// ToggleTheme flips between light and dark presentation
func (s *Session) ToggleTheme() {
	s.update(func() { s.dark = !s.dark })
}

// DismissNotice clears the current notice
func (s *Session) DismissNotice() {
	s.update(func() { s.notice = "" })
}

// Generate requests a summary of the current document with the current options.
// It returns ErrEmptyDocument or ErrRequestInFlight without touching any state
// when the trigger is not enabled. Otherwise it performs one round trip and
// stores the summary, or the classified error message, as the new Summary; the
// classified *Error is also returned.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrRequestInFlight
	}
	if strings.TrimSpace(s.text) == "" {
		s.mu.Unlock()
		return ErrEmptyDocument
	}
	s.busy = true
	text := s.text
	opts := s.opts
	s.mu.Unlock()

	// Publish the in-flight state
	s.update(func() {})

	var (
		summary string
		reqErr  *Error
	)
	defer func() {
		s.update(func() {
			s.busy = false
			s.completed = true
			if reqErr != nil {
				s.summary = reqErr.Message
			} else {
				s.summary = summary
			}
		})
	}()

	started := time.Now()
	summary, err := s.callSummarizer(ctx, text, opts)
	if err != nil {
		reqErr = NewRequestError(s.cfg.Endpoint, err)
		s.log.Debug("summary request failed", "type", reqErr.Type, "elapsed", time.Since(started))
		return reqErr
	}

	s.log.Debug("summary generated", "chars", len(summary), "elapsed", time.Since(started))
	return nil
}

// callSummarizer turns a panicking summarizer into an ordinary error
func (s *Session) callSummarizer(ctx context.Context, text string, opts models.Options) (summary string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("summarizer panicked", "panic", r)
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return s.summarizer.Summarize(ctx, text, opts)
}

// Copy writes the current summary to the clipboard. A failure raises a notice
// and leaves the summary untouched.
func (s *Session) Copy() error {
	summary := s.Snapshot().Summary
	if summary == "" {
		return ErrNoSummary
	}

	if err := s.output.WriteToClipboard(summary); err != nil {
		s.log.Warn("clipboard write failed", "error", err)
		clipErr := NewClipboardError(err)
		s.update(func() { s.notice = clipErr.Message })
		return clipErr
	}
	return nil
}

// Download saves the current summary as summary.txt in the download directory
// and returns the path written.
func (s *Session) Download() (string, error) {
	summary := s.Snapshot().Summary
	if summary == "" {
		return "", ErrNoSummary
	}

	path := export.DownloadPath(s.cfg.DownloadDir, s.cfg.DownloadOverwrite)
	if err := s.output.WriteToFile(summary, path); err != nil {
		s.log.Warn("failed to save summary", "path", path, "error", err)
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	s.log.Debug("summary saved", "path", path)
	return path, nil
}
