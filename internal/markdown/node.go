// Package markdown parses the constrained Markdown dialect produced by the
// review profiles into a flat list of display nodes.
//
// Only headings (## and ###), "* " bullet items, fenced code blocks, bold
// spans, inline code spans, blank lines and paragraphs are recognized.
// Anything else is passed through as paragraph text.
package markdown

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindListItem
	KindCodeBlock
	KindBlank
)

var kindNames = map[Kind]string{
	KindHeading:   "heading",
	KindParagraph: "paragraph",
	KindListItem:  "list_item",
	KindCodeBlock: "code_block",
	KindBlank:     "blank",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name so JSON output stays readable.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown node kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// SpanKind identifies an inline span.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanCode
)

var spanKindNames = map[SpanKind]string{
	SpanText: "text",
	SpanBold: "bold",
	SpanCode: "code",
}

func (k SpanKind) String() string {
	if name, ok := spanKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("span(%d)", int(k))
}

// MarshalText encodes the span kind by name.
func (k SpanKind) MarshalText() ([]byte, error) {
	name, ok := spanKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown span kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *SpanKind) UnmarshalText(text []byte) error {
	for kind, name := range spanKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown span kind %q", text)
}

// Span is a run of inline text with its delimiters already stripped.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// IsBold reports whether the span was delimited with **.
func (s Span) IsBold() bool { return s.Kind == SpanBold }

// IsCode reports whether the span was delimited with backticks.
func (s Span) IsCode() bool { return s.Kind == SpanCode }

// Node is one display element. Level is set for headings and Language for
// code blocks; Spans is set for headings, list items and paragraphs.
type Node struct {
	Kind     Kind   `json:"kind"`
	Level    int    `json:"level,omitempty"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
	Spans    []Span `json:"spans,omitempty"`
}

// PlainText returns the node text with inline markers removed. Code blocks
// return their contents unchanged.
func (n Node) PlainText() string {
	if n.Kind == KindCodeBlock || len(n.Spans) == 0 {
		return n.Text
	}
	var b strings.Builder
	for _, s := range n.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
