package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/code-lens/internal/markdown"
)

const bullet = "• "

// Terminal renders nodes as ANSI-styled text.
type Terminal struct {
	heading    lipgloss.Style
	subheading lipgloss.Style
	paragraph  lipgloss.Style
	bullet     lipgloss.Style
	codeBlock  lipgloss.Style
	codeLang   lipgloss.Style
	inlineCode lipgloss.Style
	bold       lipgloss.Style
}

// NewTerminal builds a terminal renderer for the given theme.
func NewTerminal(theme ThemeName) *Terminal {
	p := GetPalette(theme)
	return &Terminal{
		heading: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Inactive),
		subheading: lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		paragraph:  lipgloss.NewStyle(),
		bullet:     lipgloss.NewStyle().Foreground(p.Secondary),
		// Code is printed as received, so tabs are not expanded.
		codeBlock: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Inactive).
			Padding(0, 1).
			TabWidth(lipgloss.NoTabConversion),
		codeLang:   lipgloss.NewStyle().Foreground(p.Inactive).Italic(true),
		inlineCode: lipgloss.NewStyle().Foreground(p.CodeFg).Background(p.CodeBg).TabWidth(lipgloss.NoTabConversion),
		bold:       lipgloss.NewStyle().Bold(true),
	}
}

// Render returns the styled text for nodes, one block per line.
func (t *Terminal) Render(nodes []markdown.Node) string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case markdown.KindHeading:
			style := t.heading
			if n.Level == 3 {
				style = t.subheading
			}
			lines = append(lines, style.Render(t.spans(n.Spans)))
		case markdown.KindListItem:
			lines = append(lines, t.bullet.Render(bullet)+t.spans(n.Spans))
		case markdown.KindCodeBlock:
			lines = append(lines, t.code(n))
		case markdown.KindBlank:
			lines = append(lines, "")
		default:
			lines = append(lines, t.paragraph.Render(t.spans(n.Spans)))
		}
	}
	return strings.Join(lines, "\n")
}

func (t *Terminal) code(n markdown.Node) string {
	block := t.codeBlock.Render(n.Text)
	if n.Language == "" {
		return block
	}
	return t.codeLang.Render(n.Language) + "\n" + block
}

func (t *Terminal) spans(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case markdown.SpanBold:
			b.WriteString(t.bold.Render(s.Text))
		case markdown.SpanCode:
			b.WriteString(t.inlineCode.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
