package display

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sevigo/code-lens/internal/markdown"
)

// The class names match the stylesheet served with the browser UI.
const htmlTemplate = `{{define "spans"}}{{range .}}{{if .IsBold}}<strong class="md-bold">{{.Text}}</strong>{{else if .IsCode}}<code class="md-inline-code">{{.Text}}</code>{{else}}{{.Text}}{{end}}{{end}}{{end}}
{{- range .}}
{{- if eq .Tag "h2"}}<h2 class="md-heading">{{template "spans" .Spans}}</h2>
{{else if eq .Tag "h3"}}<h3 class="md-subheading">{{template "spans" .Spans}}</h3>
{{else if eq .Tag "ul"}}<ul>{{range .Items}}<li class="md-list-item">{{template "spans" .}}</li>{{end}}</ul>
{{else if eq .Tag "pre"}}<pre class="md-code-block"{{with .Language}} data-language="{{.}}"{{end}}><code>{{.Text}}</code></pre>
{{else if eq .Tag "spacer"}}<div class="md-spacer"></div>
{{else}}<p class="md-paragraph">{{template "spans" .Spans}}</p>
{{end}}
{{- end}}`

var htmlTmpl = template.Must(template.New("review").Parse(htmlTemplate))

// htmlBlock is a node prepared for the template. Consecutive list items are
// collected into one block so they share a single <ul>.
type htmlBlock struct {
	Tag      string
	Language string
	Text     string
	Spans    []markdown.Span
	Items    [][]markdown.Span
}

// HTML renders nodes as an escaped HTML fragment.
func HTML(nodes []markdown.Node) (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, htmlBlocks(nodes)); err != nil {
		return "", fmt.Errorf("failed to render review html: %w", err)
	}
	return buf.String(), nil
}

func htmlBlocks(nodes []markdown.Node) []htmlBlock {
	blocks := make([]htmlBlock, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case markdown.KindHeading:
			tag := "h2"
			if n.Level == 3 {
				tag = "h3"
			}
			blocks = append(blocks, htmlBlock{Tag: tag, Spans: n.Spans})
		case markdown.KindListItem:
			if last := len(blocks) - 1; last >= 0 && blocks[last].Tag == "ul" {
				blocks[last].Items = append(blocks[last].Items, n.Spans)
				continue
			}
			blocks = append(blocks, htmlBlock{Tag: "ul", Items: [][]markdown.Span{n.Spans}})
		case markdown.KindCodeBlock:
			blocks = append(blocks, htmlBlock{Tag: "pre", Language: n.Language, Text: n.Text})
		case markdown.KindBlank:
			blocks = append(blocks, htmlBlock{Tag: "spacer"})
		default:
			blocks = append(blocks, htmlBlock{Tag: "p", Spans: n.Spans})
		}
	}
	return blocks
}
