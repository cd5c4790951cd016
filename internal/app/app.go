package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"sumai-cli/internal/client"
	"sumai-cli/internal/config"
	"sumai-cli/internal/export"
	"sumai-cli/internal/input"
	"sumai-cli/internal/interactive"
	"sumai-cli/internal/interfaces"
	"sumai-cli/internal/logger"
	"sumai-cli/internal/render"
	"sumai-cli/internal/session"
	"sumai-cli/pkg/models"
)

// Run starts the interactive session
func Run(request *models.SessionRequest) error {
	flags, err := sessionFlags(request)
	if err != nil {
		return err
	}

	cfg, err := loadConfiguration(request.ConfigPath, flags)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	log := logger.GetDefault()

	sess := newSession(cfg, export.NewOutputHandler())

	view, err := render.NewView(render.NewProcessor(), cfg.ViewTemplate, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to load view: %w", err)
	}

	if request.File != "" {
		// A rejected file shows up as a notice on the first frame
		if err := sess.SelectFile(request.File); err != nil {
			log.Debug("initial file not loaded", "file", request.File, "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.ContextWithLogger(ctx, log)

	prompter := interactive.NewPrompter(sess, view, request.NumberSelect)
	prompter.SetLogger(log)
	return prompter.Run(ctx)
}

// Summarize performs a single non-interactive summarization
func Summarize(request *models.SummaryRequest) error {
	return summarize(context.Background(), request, os.Stdin, os.Stderr, export.NewOutputHandler(), export.ReadClipboard)
}

func summarize(ctx context.Context, request *models.SummaryRequest, stdin io.Reader, status io.Writer,
	output interfaces.OutputHandler, readClipboard func() (string, error)) error {
	flags, err := optionFlags(request.Endpoint, request.Tone, request.Length, request.Purpose)
	if err != nil {
		return err
	}
	flags["target"] = request.Target
	flags["timeout"] = request.Timeout
	flags["log_level"] = request.LogLevel

	cfg, err := loadConfiguration(request.ConfigPath, flags)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	text, err := resolveText(request, stdin, readClipboard)
	if err != nil {
		return err
	}

	sess := newSession(cfg, output)
	sess.SetText(text)

	if err := sess.Generate(logger.ContextWithLogger(ctx, logger.GetDefault())); err != nil {
		return err
	}

	return deliver(sess.Snapshot().Summary, cfg.Target, output, status)
}

// resolveText gathers the document from the request's sources. The clipboard
// is appended to any other text, the other sources are exclusive.
func resolveText(request *models.SummaryRequest, stdin io.Reader, readClipboard func() (string, error)) (string, error) {
	var text string

	switch {
	case request.File != "":
		name := filepath.Base(request.File)
		if input.Classify(name) != input.KindText {
			return "", session.NewFileError(name, session.ErrUnsupportedFileType, nil)
		}
		content, err := input.ReadText(request.File)
		if err != nil {
			return "", session.NewFileError(name, session.ErrFileRead, err)
		}
		text = content

	case request.FromStdin:
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		content, err := input.DecodeText(raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode stdin: %w", err)
		}
		text = content

	default:
		text = request.Text
	}

	if request.FromClipboard {
		clip, err := readClipboard()
		if err != nil {
			return "", fmt.Errorf("failed to read from clipboard: %w", err)
		}
		clip = strings.TrimSpace(clip)
		if clip == "" {
			return "", fmt.Errorf("clipboard is empty")
		}
		if strings.TrimSpace(text) == "" {
			text = clip
		} else {
			text = text + "\n\n" + clip
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", session.ErrEmptyDocument
	}
	return text, nil
}

// deliver writes the summary to the configured target
func deliver(summary, target string, output interfaces.OutputHandler, status io.Writer) error {
	if target == "" {
		target = "stdout"
	}

	switch {
	case target == "clipboard":
		if err := output.WriteToClipboard(summary); err != nil {
			clipErr := session.NewClipboardError(err)
			fmt.Fprintf(status, "Warning: %s\nFalling back to stdout:\n\n", clipErr.Message)
			return output.WriteToStdout(summary)
		}
		fmt.Fprintln(status, "Summary copied to clipboard")

	case target == "stdout":
		if err := output.WriteToStdout(summary); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}

	case strings.HasPrefix(target, "file:"):
		path := strings.TrimPrefix(target, "file:")
		if err := output.WriteToFile(summary, path); err != nil {
			return fmt.Errorf("failed to write summary to %s: %w", path, err)
		}
		fmt.Fprintf(status, "Summary written to %s\n", path)

	default:
		return fmt.Errorf("unsupported output target: %s", target)
	}

	return nil
}

// Health reports whether the summarization service is up
func Health(configPath, endpoint string, timeout time.Duration) error {
	return health(context.Background(), configPath, endpoint, timeout, os.Stdout)
}

func health(ctx context.Context, configPath, endpoint string, timeout time.Duration, w io.Writer) error {
	cfg, err := loadConfiguration(configPath, map[string]interface{}{
		"endpoint": endpoint,
		"timeout":  timeout,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	healthURL, err := client.HealthURL(cfg.Endpoint)
	if err != nil {
		return err
	}

	status, err := newClient(cfg).Health(ctx)
	if err != nil {
		return fmt.Errorf("health check failed for %s: %w", healthURL, err)
	}

	loaded := "no"
	if status.ModelLoaded {
		loaded = "yes"
	}
	fmt.Fprintf(w, "Service: %s (%s)\n", status.Status, healthURL)
	fmt.Fprintf(w, "Model loaded: %s\n", loaded)
	if status.Device != "" {
		fmt.Fprintf(w, "Device: %s\n", status.Device)
	}
	if status.Message != "" {
		fmt.Fprintf(w, "Message: %s\n", status.Message)
	}
	return nil
}

// ListOptions prints every tone, length and purpose, marking the configured defaults
func ListOptions(configPath string) error {
	return listOptions(configPath, os.Stdout)
}

func listOptions(configPath string, w io.Writer) error {
	cfg, err := loadConfiguration(configPath, nil)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	defaults := config.DefaultOptions(cfg)

	if configPath == "" {
		if path, err := config.DefaultPath(); err == nil {
			configPath = path
		}
	}
	fmt.Fprintf(w, "Config: %s\n", contractPath(configPath))
	fmt.Fprintf(w, "Endpoint: %s\n\n", cfg.Endpoint)

	printOptions(w, "Tones", models.Tones, models.Tone.Label, defaults.Tone)
	fmt.Fprintln(w)
	printOptions(w, "Lengths", models.Lengths, models.Length.Label, defaults.Length)
	fmt.Fprintln(w)
	printOptions(w, "Purposes", models.Purposes, models.Purpose.Label, defaults.Purpose)
	return nil
}

func printOptions[T ~string](w io.Writer, heading string, values []T, label func(T) string, current T) {
	fmt.Fprintf(w, "%s:\n", heading)
	for _, v := range values {
		marker := ""
		if v == current {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  - %s [%s]%s\n", label(v), string(v), marker)
	}
}

// loadConfiguration loads .env, the config file and flag overrides, validates
// the result and configures the process logger from it
func loadConfiguration(configPath string, flags map[string]interface{}) (*interfaces.Config, error) {
	if err := config.LoadDotEnv(""); err != nil {
		return nil, err
	}

	manager := config.NewManager()
	if _, err := manager.Load(configPath); err != nil {
		return nil, err
	}
	for key, value := range flags {
		manager.SetFlag(key, value)
	}

	cfg, err := manager.Resolve()
	if err != nil {
		return nil, err
	}
	if err := manager.Validate(cfg); err != nil {
		return nil, err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.JSON = cfg.LogJSON
	logger.Init(logCfg)

	return cfg, nil
}

func sessionFlags(request *models.SessionRequest) (map[string]interface{}, error) {
	flags, err := optionFlags(request.Endpoint, request.Tone, request.Length, request.Purpose)
	if err != nil {
		return nil, err
	}
	if request.Theme != "" {
		flags["theme"] = strings.ToLower(request.Theme)
	}
	flags["timeout"] = request.Timeout
	flags["log_level"] = request.LogLevel
	return flags, nil
}

// optionFlags normalizes the option flags so "Key Points" and "keypoints" both work
func optionFlags(endpoint, tone, length, purpose string) (map[string]interface{}, error) {
	flags := map[string]interface{}{"endpoint": endpoint}

	if tone != "" {
		t, err := models.ParseTone(tone)
		if err != nil {
			return nil, err
		}
		flags["default_tone"] = string(t)
	}
	if length != "" {
		l, err := models.ParseLength(length)
		if err != nil {
			return nil, err
		}
		flags["default_length"] = string(l)
	}
	if purpose != "" {
		p, err := models.ParsePurpose(purpose)
		if err != nil {
			return nil, err
		}
		flags["default_purpose"] = string(p)
	}
	return flags, nil
}

func newClient(cfg *interfaces.Config) *client.Client {
	log := logger.GetDefault()
	return client.New(cfg.Endpoint, cfg.Timeout,
		client.WithLogger(log),
		client.WithDebug(strings.EqualFold(cfg.LogLevel, "debug")),
	)
}

func newSession(cfg *interfaces.Config, output interfaces.OutputHandler) *session.Session {
	sess := session.New(newClient(cfg), output, session.Config{
		Endpoint:          cfg.Endpoint,
		DownloadDir:       cfg.DownloadDir,
		DownloadOverwrite: cfg.DownloadOverwrite,
		Options:           config.DefaultOptions(cfg),
		Dark:              cfg.Theme == "dark",
	})
	sess.SetLogger(logger.GetDefault())
	return sess
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}
