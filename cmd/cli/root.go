package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/code-lens/internal/logger"
)

var (
	githubToken string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "lens-cli",
	Short: "lens-cli reviews source code with Code-Lens from the terminal.",
	Long: `A CLI for Code-Lens. It sends code for review, either through the
in-process review service or a running Code-Lens server, and renders the
Markdown answer for the terminal.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub Token")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output with timing information")

	if err := viper.BindPFlag("GITHUB_TOKEN", rootCmd.PersistentFlags().Lookup("github-token")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// cliLogger keeps service logs off stdout so they do not mix with the review.
func cliLogger(w io.Writer) *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.NewLogger(logger.Config{Level: level, Format: "text"}, w)
}
