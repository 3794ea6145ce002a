package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/code-lens/internal/client"
	"github.com/sevigo/code-lens/internal/config"
	"github.com/sevigo/code-lens/internal/core"
	"github.com/sevigo/code-lens/internal/display"
	"github.com/sevigo/code-lens/internal/github"
	"github.com/sevigo/code-lens/internal/markdown"
	"github.com/sevigo/code-lens/internal/wire"
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var (
	reviewServer string
	reviewGitHub string
	reviewRaw    bool
	reviewTheme  string
)

var reviewCmd = &cobra.Command{
	Use:   "review [file|-]",
	Short: "Review a source file with the configured model",
	Long: `Review a source file with the configured model.

The code is read from a file, from stdin ("-" or no argument), or from GitHub
with --github. By default the review runs in-process using the same settings
as the server; --server sends it to a running Code-Lens server instead.

Examples:
  lens-cli review main.go
  cat main.go | lens-cli review -
  lens-cli review --github sevigo/code-lens/cmd/server/main.go@main
  lens-cli review --server http://localhost:3000 main.go`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVar(&reviewServer, "server", "", "Review through the Code-Lens server at this URL")
	reviewCmd.Flags().StringVar(&reviewGitHub, "github", "", "Fetch the code from GitHub: owner/repo/path[@ref]")
	reviewCmd.Flags().BoolVar(&reviewRaw, "raw", false, "Print the Markdown without rendering it")
	reviewCmd.Flags().StringVar(&reviewTheme, "theme", string(display.ThemeCyan), "Color theme for the rendered review")
	rootCmd.AddCommand(reviewCmd)
}

// stepTimer tracks timing for verbose output
type stepTimer struct {
	stepNum    int
	totalSteps int
	start      time.Time
	verbose    bool
	out        io.Writer
}

func newStepTimer(totalSteps int, verbose bool, out io.Writer) *stepTimer {
	return &stepTimer{
		totalSteps: totalSteps,
		verbose:    verbose,
		out:        out,
	}
}

func (t *stepTimer) step(name string) {
	t.stepNum++
	t.start = time.Now()
	if t.verbose {
		titleColor.Fprintf(t.out, "Step %d/%d: %s...\n", t.stepNum, t.totalSteps, name)
	}
}

func (t *stepTimer) done(details ...string) {
	if t.verbose {
		elapsed := time.Since(t.start).Round(time.Millisecond)
		successColor.Fprintf(t.out, "   done (%s)\n", elapsed)
		for _, d := range details {
			dimColor.Fprintf(t.out, "   - %s\n", d)
		}
	}
}

// reviewer is the part of the review service and HTTP client the command uses.
type reviewer interface {
	Review(ctx context.Context, code string) (*core.ReviewResponse, error)
}

type serviceReviewer struct {
	service core.ReviewService
}

func (s serviceReviewer) Review(ctx context.Context, code string) (*core.ReviewResponse, error) {
	return s.service.Review(ctx, core.ReviewRequest{SourceText: code})
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	status := cmd.ErrOrStderr()
	timer := newStepTimer(3, verbose, status)

	if !display.IsTheme(display.ThemeName(reviewTheme)) {
		return fmt.Errorf("unknown theme %q (available: %s)", reviewTheme, themeList())
	}

	timer.step("Loading code")
	code, origin, err := loadReviewSource(ctx, cmd, args)
	if err != nil {
		return err
	}
	timer.done(fmt.Sprintf("%s, %d bytes", origin, len(code)))

	timer.step("Preparing reviewer")
	rev, err := newReviewer(ctx, status)
	if err != nil {
		return err
	}
	timer.done()

	timer.step("Generating review")
	resp, err := rev.Review(ctx, code)
	if err != nil {
		if client.IsConflict(err) {
			warnColor.Fprintln(status, "A review for this session is still running.")
		}
		if core.IsTransportFailure(err) {
			errorColor.Fprintln(status, "Review failed: the model could not be reached.")
		}
		return fmt.Errorf("failed to generate review: %w", err)
	}
	timer.done(fmt.Sprintf("%d bytes in %s", len(resp.MarkdownText), resp.Duration.Round(time.Millisecond)))

	return printReview(out, resp, reviewRaw, display.ThemeName(reviewTheme))
}

func loadReviewSource(ctx context.Context, cmd *cobra.Command, args []string) (string, string, error) {
	if reviewGitHub != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("pass either a file or --github, not both")
		}
		token := viper.GetString("GITHUB_TOKEN")
		gh := github.NewPATClient(ctx, token, cliLogger(cmd.ErrOrStderr()))
		return readGitHubSource(ctx, gh, reviewGitHub)
	}
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	return readSource(arg, cmd.InOrStdin())
}

func newReviewer(ctx context.Context, status io.Writer) (reviewer, error) {
	if reviewServer != "" {
		return client.New(reviewServer), nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\n\nTip: set GEMINI_API_KEY or LLM_PROVIDER=ollama", err)
	}
	svc, err := wire.InitializeReviewService(ctx, cfg, cliLogger(status))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize review service: %w", err)
	}
	return serviceReviewer{service: svc}, nil
}

func printReview(w io.Writer, resp *core.ReviewResponse, raw bool, theme display.ThemeName) error {
	if resp.Precheck {
		warnColor.Fprintln(w, resp.MarkdownText)
		return nil
	}
	if raw {
		_, err := fmt.Fprintln(w, resp.MarkdownText)
		return err
	}
	_, err := fmt.Fprintln(w, display.NewTerminal(theme).Render(markdown.Parse(resp.MarkdownText)))
	return err
}

func themeList() string {
	themes := display.ListThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
