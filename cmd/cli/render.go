package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-lens/internal/display"
	"github.com/sevigo/code-lens/internal/markdown"
)

const (
	engineConstrained = "constrained"
	engineGlamour     = "glamour"
)

var (
	renderEngine string
	renderFormat string
	renderTheme  string
	renderWidth  int
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render review Markdown without calling the model",
	Long: `Render review Markdown without calling the model.

The constrained engine understands only the dialect the review profiles
produce and can print terminal text, an HTML fragment or the parsed nodes as
JSON. The glamour engine renders full Markdown for comparison.

Examples:
  lens-cli render review.md
  lens-cli render --format html review.md > review.html
  lens-cli render --engine glamour review.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	renderCmd.Flags().StringVar(&renderEngine, "engine", engineConstrained, "Renderer: constrained or glamour")
	renderCmd.Flags().StringVar(&renderFormat, "format", "terminal", "Output format for the constrained engine: terminal, html or json")
	renderCmd.Flags().StringVar(&renderTheme, "theme", string(display.ThemeCyan), "Color theme for terminal output")
	renderCmd.Flags().IntVar(&renderWidth, "width", 100, "Word wrap width for the glamour engine")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	text, _, err := readSource(arg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return renderMarkdown(cmd.OutOrStdout(), text, renderEngine, renderFormat, display.ThemeName(renderTheme), renderWidth)
}

func renderMarkdown(w io.Writer, text, engine, format string, theme display.ThemeName, width int) error {
	switch engine {
	case engineGlamour:
		out, err := display.Glamour(text, width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case engineConstrained:
	default:
		return fmt.Errorf("unknown engine %q: use %s or %s", engine, engineConstrained, engineGlamour)
	}

	nodes := markdown.Parse(text)
	switch format {
	case "terminal":
		_, err := fmt.Fprintln(w, display.NewTerminal(theme).Render(nodes))
		return err
	case "html":
		html, err := display.HTML(nodes)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	case "json":
		if nodes == nil {
			nodes = []markdown.Node{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	default:
		return fmt.Errorf("unknown format %q: use terminal, html or json", format)
	}
}
