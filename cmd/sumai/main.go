package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"sumai-cli/internal/app"
	"sumai-cli/internal/input"
	"sumai-cli/internal/session"
	"sumai-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "sumai",
	Short: "Summarize long text with a remote summarization service",
	Long: `SumAI sends text to a summarization service and shows the result.

Run without arguments for an interactive session: paste or type text, or load a
.txt file, pick a tone, length and purpose, then generate, copy or download the
summary. Use "sumai summarize" for one-shot summaries in scripts.

Settings are read from ~/.config/sumai/config.toml, SUMAI_* environment variables
and a .env file in the working directory; flags take precedence.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildSessionRequest(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(request)
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text]",
	Short: "Summarize text once and print the result",
	Long: `Summarize text from an argument, a .txt file (--file), the clipboard (--clipboard)
or piped standard input. Clipboard content is appended to any other text.
Use "-" as the text argument to read standard input explicitly.

The summary goes to the output target: stdout (default), clipboard or file:/path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildSummaryRequest(cmd, args, stdinIsPiped())
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Summarize(request)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the summarization service is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		endpoint, _ := cmd.Flags().GetString("endpoint")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		return app.Health(configPath, endpoint, timeout)
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the available tones, lengths and purposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return app.ListOptions(configPath)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sumai version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/sumai/config.toml)")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "summarization endpoint URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "request timeout, e.g. 30s (default from config, 60s)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	// Option flags shared by the session and one-shot commands
	for _, cmd := range []*cobra.Command{rootCmd, summarizeCmd} {
		cmd.Flags().String("tone", "", "tone: casual, formal, professional, friendly")
		cmd.Flags().String("length", "", "length: short, medium, detailed")
		cmd.Flags().String("purpose", "", "purpose: tldr, keypoints, explainer")
		cmd.Flags().StringP("file", "f", "", fmt.Sprintf("text file to load (%s)", input.AcceptFilter))
	}

	// Main command flags
	rootCmd.Flags().String("theme", "", "start in light or dark mode")
	rootCmd.Flags().BoolP("numbers", "n", false, "enable number key selection in menus")

	// Summarize flags
	summarizeCmd.Flags().BoolP("clipboard", "b", false, "append clipboard content to the text (or use it as the text)")
	summarizeCmd.Flags().StringP("target", "t", "", "output target (clipboard, stdout, file:/path)")
}

// buildSessionRequest constructs a SessionRequest from command flags
func buildSessionRequest(cmd *cobra.Command) (*models.SessionRequest, error) {
	request := models.NewSessionRequest()

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if request.Endpoint, err = cmd.Flags().GetString("endpoint"); err != nil {
		return nil, fmt.Errorf("invalid endpoint flag: %w", err)
	}
	if request.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, fmt.Errorf("invalid timeout flag: %w", err)
	}
	if request.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}
	if request.File, err = cmd.Flags().GetString("file"); err != nil {
		return nil, fmt.Errorf("invalid file flag: %w", err)
	}
	if request.Theme, err = cmd.Flags().GetString("theme"); err != nil {
		return nil, fmt.Errorf("invalid theme flag: %w", err)
	}
	if request.NumberSelect, err = cmd.Flags().GetBool("numbers"); err != nil {
		return nil, fmt.Errorf("invalid numbers flag: %w", err)
	}
	if request.Tone, request.Length, request.Purpose, err = optionFlags(cmd); err != nil {
		return nil, err
	}

	return request, nil
}

// buildSummaryRequest constructs a SummaryRequest from command flags and arguments.
// Piped standard input is used when no other text source is given.
func buildSummaryRequest(cmd *cobra.Command, args []string, piped bool) (*models.SummaryRequest, error) {
	request := models.NewSummaryRequest()

	if len(args) > 0 {
		if args[0] == "-" {
			request.FromStdin = true
		} else {
			request.Text = args[0]
		}
	}

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if request.Endpoint, err = cmd.Flags().GetString("endpoint"); err != nil {
		return nil, fmt.Errorf("invalid endpoint flag: %w", err)
	}
	if request.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, fmt.Errorf("invalid timeout flag: %w", err)
	}
	if request.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}
	if request.File, err = cmd.Flags().GetString("file"); err != nil {
		return nil, fmt.Errorf("invalid file flag: %w", err)
	}
	if request.FromClipboard, err = cmd.Flags().GetBool("clipboard"); err != nil {
		return nil, fmt.Errorf("invalid clipboard flag: %w", err)
	}
	if request.Target, err = cmd.Flags().GetString("target"); err != nil {
		return nil, fmt.Errorf("invalid target flag: %w", err)
	}
	if request.Tone, request.Length, request.Purpose, err = optionFlags(cmd); err != nil {
		return nil, err
	}

	if request.File != "" && (request.Text != "" || request.FromStdin) {
		return nil, fmt.Errorf("cannot combine --file with text from an argument or stdin")
	}

	if piped && request.Text == "" && request.File == "" && !request.FromClipboard {
		request.FromStdin = true
	}

	return request, nil
}

func optionFlags(cmd *cobra.Command) (tone, length, purpose string, err error) {
	if tone, err = cmd.Flags().GetString("tone"); err != nil {
		return "", "", "", fmt.Errorf("invalid tone flag: %w", err)
	}
	if length, err = cmd.Flags().GetString("length"); err != nil {
		return "", "", "", fmt.Errorf("invalid length flag: %w", err)
	}
	if purpose, err = cmd.Flags().GetString("purpose"); err != nil {
		return "", "", "", fmt.Errorf("invalid purpose flag: %w", err)
	}
	return strings.TrimSpace(tone), strings.TrimSpace(length), strings.TrimSpace(purpose), nil
}

func stdinIsPiped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorText(err))
		os.Exit(1)
	}
}

// errorText prefers the classified user message and its suggestion
func errorText(err error) string {
	var sessionErr *session.Error
	if errors.As(err, &sessionErr) {
		text := sessionErr.Message
		if !strings.HasPrefix(text, "Error") {
			text = "Error: " + text
		}
		if sessionErr.Guidance != "" {
			text += "\n\nSuggestion: " + sessionErr.Guidance
		}
		return text
	}
	return fmt.Sprintf("Error: %v", err)
}
