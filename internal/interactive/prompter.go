package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
	"sumai-cli/internal/config"
	"sumai-cli/internal/input"
	"sumai-cli/internal/logger"
	"sumai-cli/internal/render"
	"sumai-cli/internal/session"
	"sumai-cli/pkg/models"
)

// Menu actions
const (
	ActionEnterText   = "Enter or paste text"
	ActionLoadFile    = "Load text file"
	ActionTone        = "Tone"
	ActionLength      = "Length"
	ActionPurpose     = "Purpose"
	ActionGenerate    = "Generate summary"
	ActionCopy        = "Copy summary"
	ActionDownload    = "Download summary"
	ActionToggleTheme = "Toggle theme"
	ActionQuit        = "Quit"
)

// Asker collects answers from the user
type Asker interface {
	Select(message, help string, options []string, defaultOption string) (string, error)
	Input(message, help string) (string, error)
	Multiline(message, help string) (string, error)
}

// Prompter drives a session from an interactive menu
type Prompter struct {
	sess *session.Session
	view *render.View
	ask  Asker
	out  io.Writer
	log  logger.Logger

	// spin runs action while showing title; nil runs it plainly
	spin func(ctx context.Context, title string, action func()) error
}

// NewPrompter creates a prompter on the terminal. With numberSelect, menus
// are answered by pressing the option's number key.
func NewPrompter(sess *session.Session, view *render.View, numberSelect bool) *Prompter {
	p := &Prompter{
		sess: sess,
		view: view,
		ask:  NewSurveyAsker(numberSelect),
		out:  os.Stdout,
		log:  logger.GetDefault(),
	}
	if term.IsTerminal(int(syscall.Stdout)) {
		p.spin = runSpinner
	}
	return p
}

// SetLogger replaces the prompter's logger
func (p *Prompter) SetLogger(l logger.Logger) {
	p.log = l
}

func runSpinner(ctx context.Context, title string, action func()) error {
	return spinner.New().Context(ctx).Title(title).Action(action).Run()
}

// Run shows the view and handles menu actions until the user quits
func (p *Prompter) Run(ctx context.Context) error {
	unsubscribe := p.sess.Subscribe(func(snap session.Snapshot) {
		p.log.Debug("session updated", "state", snap.State, "chars", len(snap.Text), "has_summary", snap.HasSummary())
	})
	defer unsubscribe()

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := p.render(); err != nil {
			return err
		}

		action, err := p.ask.Select("What would you like to do?", "", p.menu(), "")
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read menu selection: %w", err)
		}

		if action == ActionQuit {
			return nil
		}
		if err := p.handle(ctx, action); err != nil {
			return err
		}
	}
}

// render draws the current state and then drops the notice, so it shows once
func (p *Prompter) render() error {
	snap := p.sess.Snapshot()
	if err := p.view.Render(snap.ViewData()); err != nil {
		return fmt.Errorf("failed to render view: %w", err)
	}
	if snap.Notice != "" {
		p.sess.DismissNotice()
	}
	return nil
}

// menu lists the actions available in the current state
func (p *Prompter) menu() []string {
	snap := p.sess.Snapshot()

	options := []string{ActionEnterText, ActionLoadFile, ActionTone, ActionLength, ActionPurpose}
	if snap.CanGenerate() {
		options = append(options, ActionGenerate)
	}
	if snap.HasSummary() {
		options = append(options, ActionCopy, ActionDownload)
	}
	return append(options, ActionToggleTheme, ActionQuit)
}

func (p *Prompter) handle(ctx context.Context, action string) error {
	switch action {
	case ActionEnterText:
		return p.enterText()
	case ActionLoadFile:
		return p.loadFile()
	case ActionTone:
		return p.selectTone()
	case ActionLength:
		return p.selectLength()
	case ActionPurpose:
		return p.selectPurpose()
	case ActionGenerate:
		return p.generate(ctx)
	case ActionCopy:
		if err := p.sess.Copy(); err == nil {
			fmt.Fprintln(p.out, "Summary copied to clipboard")
		}
		return nil
	case ActionDownload:
		path, err := p.sess.Download()
		if err != nil {
			fmt.Fprintf(p.out, "Could not save the summary: %v\n", err)
			return nil
		}
		fmt.Fprintf(p.out, "Summary saved to %s\n", path)
		return nil
	case ActionToggleTheme:
		p.sess.ToggleTheme()
		return nil
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func (p *Prompter) enterText() error {
	text, err := p.ask.Multiline("Paste or type your long text here...",
		"Finish with two empty lines. The text replaces the current input.")
	if err != nil {
		return ignoreInterrupt(err)
	}
	p.sess.SetText(text)
	return nil
}

func (p *Prompter) loadFile() error {
	path, err := p.ask.Input("Path to a text file:", fmt.Sprintf("Accepted: %s (PDF is not supported yet)", input.AcceptFilter))
	if err != nil {
		return ignoreInterrupt(err)
	}
	path = config.ExpandPath(strings.TrimSpace(path))
	if path == "" {
		return nil
	}
	// Rejections surface as the session notice
	_ = p.sess.SelectFile(path)
	return nil
}

func (p *Prompter) selectTone() error {
	current := p.sess.Snapshot().Options.Tone
	labels, values := optionLabels(models.Tones, models.Tone.Label)
	picked, err := p.ask.Select("Tone:", "How the summary should sound", labels, current.Label())
	if err != nil {
		return ignoreInterrupt(err)
	}
	return p.sess.SetTone(values[picked])
}

func (p *Prompter) selectLength() error {
	current := p.sess.Snapshot().Options.Length
	labels, values := optionLabels(models.Lengths, models.Length.Label)
	picked, err := p.ask.Select("Length:", "How much detail to keep", labels, current.Label())
	if err != nil {
		return ignoreInterrupt(err)
	}
	return p.sess.SetLength(values[picked])
}

func (p *Prompter) selectPurpose() error {
	current := p.sess.Snapshot().Options.Purpose
	labels, values := optionLabels(models.Purposes, models.Purpose.Label)
	picked, err := p.ask.Select("Purpose:", "What the summary is for", labels, current.Label())
	if err != nil {
		return ignoreInterrupt(err)
	}
	return p.sess.SetPurpose(values[picked])
}

func optionLabels[T comparable](all []T, label func(T) string) ([]string, map[string]T) {
	labels := make([]string, 0, len(all))
	values := make(map[string]T, len(all))
	for _, v := range all {
		l := label(v)
		labels = append(labels, l)
		values[l] = v
	}
	return labels, values
}

func (p *Prompter) generate(ctx context.Context) error {
	var genErr error
	run := func() { genErr = p.sess.Generate(ctx) }

	if p.spin != nil {
		if err := p.spin(ctx, "Generating Summary...", run); err != nil {
			// Ctrl+C while waiting ends the session like an interrupted prompt
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("spinner failed: %w", err)
		}
	} else {
		fmt.Fprintln(p.out, "Generating Summary...")
		run()
	}

	switch {
	case errors.Is(genErr, session.ErrEmptyDocument), errors.Is(genErr, session.ErrRequestInFlight):
		fmt.Fprintln(p.out, genErr.Error())
	case genErr != nil:
		// The message is already the summary; keep details for the log
		p.log.Warn("summary request failed", "error", genErr)
	}
	return nil
}

func ignoreInterrupt(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return nil
	}
	return err
}

// SurveyAsker asks through survey prompts, or number keys when enabled
type SurveyAsker struct {
	numberSelect bool
	in           io.Reader
	out          io.Writer

	// lines is shared by every fallback selection so read-ahead is not lost
	lines *bufio.Reader
}

// NewSurveyAsker creates an asker on stdin/stdout
func NewSurveyAsker(numberSelect bool) *SurveyAsker {
	return &SurveyAsker{
		numberSelect: numberSelect,
		in:           os.Stdin,
		out:          os.Stdout,
		lines:        bufio.NewReader(os.Stdin),
	}
}

func (a *SurveyAsker) lineReader() *bufio.Reader {
	if a.lines == nil {
		a.lines = bufio.NewReader(a.in)
	}
	return a.lines
}

// Select asks the user to pick one of options
func (a *SurveyAsker) Select(message, help string, options []string, defaultOption string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to select from")
	}

	if a.numberSelect {
		return a.selectWithNumbers(options, message, help, defaultOption)
	}

	prompt := &survey.Select{
		Message: message,
		Options: options,
		Help:    help,
	}
	if defaultOption != "" {
		prompt.Default = defaultOption
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}

// Input asks for a single line
func (a *SurveyAsker) Input(message, help string) (string, error) {
	prompt := &survey.Input{
		Message: message,
		Help:    help,
	}

	var answer string
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// Multiline asks for free text ending with an empty line
func (a *SurveyAsker) Multiline(message, help string) (string, error) {
	prompt := &survey.Multiline{
		Message: message,
		Help:    help,
	}

	var text string
	if err := survey.AskOne(prompt, &text); err != nil {
		return "", err
	}
	return text, nil
}

// selectWithNumbers displays numbered options and allows instant selection by number key
func (a *SurveyAsker) selectWithNumbers(options []string, message, help, defaultOption string) (string, error) {
	fmt.Fprintf(a.out, "\n%s\n", message)
	if help != "" {
		fmt.Fprintf(a.out, "  %s (Press number key for instant selection)\n", help)
	}
	fmt.Fprintln(a.out)

	for i, option := range options {
		marker := ""
		if option == defaultOption {
			marker = " (current)"
		}
		fmt.Fprintf(a.out, "  %d. %s%s\n", i+1, option, marker)
	}
	fmt.Fprintln(a.out)

	def := defaultIndex(options, defaultOption)

	// Single key presses need a real terminal in raw mode; more than nine
	// options need the line based fallback as well
	stdin, ok := a.in.(*os.File)
	if !ok || len(options) > 9 || !term.IsTerminal(int(stdin.Fd())) {
		return fallbackNumberSelection(a.lineReader(), a.out, options, def)
	}

	oldState, err := term.MakeRaw(int(stdin.Fd()))
	if err != nil {
		return fallbackNumberSelection(a.lineReader(), a.out, options, def)
	}
	defer term.Restore(int(stdin.Fd()), oldState)

	fmt.Fprint(a.out, "Select option: ")

	buffer := make([]byte, 1)
	for {
		if _, err := stdin.Read(buffer); err != nil {
			return "", err
		}

		char := buffer[0]

		if char >= '1' && char <= '9' {
			selectedIndex := int(char - '1')
			if selectedIndex < len(options) {
				fmt.Fprintf(a.out, "%c\r\n", char)
				return options[selectedIndex], nil
			}
		}

		// Enter keeps the current value
		if char == '\r' || char == '\n' {
			fmt.Fprint(a.out, "\r\n")
			return options[def], nil
		}

		// Escape or Ctrl+C
		if char == 27 || char == 3 {
			fmt.Fprint(a.out, "\r\n")
			return "", terminal.InterruptErr
		}
	}
}

// fallbackNumberSelection reads a number followed by Enter, asking again
// until the answer is in range
func fallbackNumberSelection(reader *bufio.Reader, out io.Writer, options []string, def int) (string, error) {
	for {
		fmt.Fprintf(out, "Enter number (1-%d) or press Enter for %s: ", len(options), options[def])

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return options[def], nil
		}

		selectedIndex, convErr := strconv.Atoi(line)
		if convErr == nil && selectedIndex >= 1 && selectedIndex <= len(options) {
			return options[selectedIndex-1], nil
		}

		fmt.Fprintf(out, "Invalid selection %q: please enter a number between 1 and %d\n", line, len(options))
		if err != nil {
			// Input ended on the invalid line
			return "", err
		}
	}
}

func defaultIndex(options []string, defaultOption string) int {
	for i, option := range options {
		if option == defaultOption {
			return i
		}
	}
	return 0
}
