package markdown

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Node
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "level two heading",
			input: "## Title\n",
			want: []Node{
				{Kind: KindHeading, Level: 2, Text: "Title", Spans: []Span{{Kind: SpanText, Text: "Title"}}},
			},
		},
		{
			name:  "level three heading",
			input: "### Language: Python",
			want: []Node{
				{Kind: KindHeading, Level: 3, Text: "Language: Python", Spans: []Span{{Kind: SpanText, Text: "Language: Python"}}},
			},
		},
		{
			name:  "list items stay independent",
			input: "* item one\n* item two\n",
			want: []Node{
				{Kind: KindListItem, Text: "item one", Spans: []Span{{Kind: SpanText, Text: "item one"}}},
				{Kind: KindListItem, Text: "item two", Spans: []Span{{Kind: SpanText, Text: "item two"}}},
			},
		},
		{
			name:  "indented list item keeps its indentation",
			input: "   * nested look",
			want: []Node{
				{Kind: KindListItem, Text: "   nested look", Spans: []Span{{Kind: SpanText, Text: "   nested look"}}},
			},
		},
		{
			name:  "tab indented list item",
			input: "\t* **Fix**: x",
			want: []Node{
				{Kind: KindListItem, Text: "\t**Fix**: x", Spans: []Span{
					{Kind: SpanText, Text: "\t"},
					{Kind: SpanBold, Text: "Fix"},
					{Kind: SpanText, Text: ": x"},
				}},
			},
		},
		{
			name:  "code block with language",
			input: "```js\nconst x = 1;\n```",
			want: []Node{
				{Kind: KindCodeBlock, Language: "js", Text: "const x = 1;"},
			},
		},
		{
			name:  "blank lines and paragraphs",
			input: "first\n\n  \nsecond",
			want: []Node{
				{Kind: KindParagraph, Text: "first", Spans: []Span{{Kind: SpanText, Text: "first"}}},
				{Kind: KindBlank, Text: ""},
				{Kind: KindBlank, Text: "  "},
				{Kind: KindParagraph, Text: "second", Spans: []Span{{Kind: SpanText, Text: "second"}}},
			},
		},
		{
			name:  "heading wins over inline spans",
			input: "## **Issue #1 (Line 3)** in `main`",
			want: []Node{
				{
					Kind:  KindHeading,
					Level: 2,
					Text:  "**Issue #1 (Line 3)** in `main`",
					Spans: []Span{
						{Kind: SpanBold, Text: "Issue #1 (Line 3)"},
						{Kind: SpanText, Text: " in "},
						{Kind: SpanCode, Text: "main"},
					},
				},
			},
		},
		{
			name:  "hashes without space are a paragraph",
			input: "##Title",
			want: []Node{
				{Kind: KindParagraph, Text: "##Title", Spans: []Span{{Kind: SpanText, Text: "##Title"}}},
			},
		},
		{
			name:  "text around a fenced block",
			input: "Fix:\n```go\nx := 1\n```\nDone.",
			want: []Node{
				{Kind: KindParagraph, Text: "Fix:", Spans: []Span{{Kind: SpanText, Text: "Fix:"}}},
				{Kind: KindCodeBlock, Language: "go", Text: "x := 1"},
				{Kind: KindParagraph, Text: "Done.", Spans: []Span{{Kind: SpanText, Text: "Done."}}},
			},
		},
		{
			name:  "unterminated fence runs to end of input",
			input: "Before\n```python\nprint(1)\n\n## not a heading\n",
			want: []Node{
				{Kind: KindParagraph, Text: "Before", Spans: []Span{{Kind: SpanText, Text: "Before"}}},
				{Kind: KindCodeBlock, Language: "python", Text: "print(1)\n\n## not a heading\n"},
			},
		},
		{
			name:  "code block keeps interior whitespace",
			input: "```\n  a\t\n\n    b\n```",
			want: []Node{
				{Kind: KindCodeBlock, Text: "  a\t\n\n    b"},
			},
		},
		{
			name:  "language tags with symbols",
			input: "```c++\nint x;\n```",
			want: []Node{
				{Kind: KindCodeBlock, Language: "c++", Text: "int x;"},
			},
		},
		{
			name:  "single line fence",
			input: "```inline code```",
			want: []Node{
				{Kind: KindCodeBlock, Language: "inline", Text: " code"},
			},
		},
		{
			name:  "windows line endings around a fence",
			input: "```go\r\nx := 1\r\n```\r\nDone.\r\n",
			want: []Node{
				{Kind: KindCodeBlock, Language: "go", Text: "x := 1"},
				{Kind: KindParagraph, Text: "Done.", Spans: []Span{{Kind: SpanText, Text: "Done."}}},
			},
		},
		{
			name:  "windows line break after a closing fence is not a blank line",
			input: "```\r\na\r\n```\r\nb",
			want: []Node{
				{Kind: KindCodeBlock, Text: "a"},
				{Kind: KindParagraph, Text: "b", Spans: []Span{{Kind: SpanText, Text: "b"}}},
			},
		},
		{
			name:  "windows line endings on text lines",
			input: "## Title\r\n* item\r\n",
			want: []Node{
				{Kind: KindHeading, Level: 2, Text: "Title", Spans: []Span{{Kind: SpanText, Text: "Title"}}},
				{Kind: KindListItem, Text: "item", Spans: []Span{{Kind: SpanText, Text: "item"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "bold and code",
			input: "**bold** and `code`",
			want: []Span{
				{Kind: SpanBold, Text: "bold"},
				{Kind: SpanText, Text: " and "},
				{Kind: SpanCode, Text: "code"},
			},
		},
		{
			name:  "unterminated bold is literal",
			input: "**bold text",
			want:  []Span{{Kind: SpanText, Text: "**bold text"}},
		},
		{
			name:  "unterminated code is literal",
			input: "call `foo(",
			want:  []Span{{Kind: SpanText, Text: "call `foo("}},
		},
		{
			name:  "unterminated bold before a valid code span",
			input: "**oops `ok`",
			want: []Span{
				{Kind: SpanText, Text: "**oops "},
				{Kind: SpanCode, Text: "ok"},
			},
		},
		{
			name:  "bold markers inside code are not parsed",
			input: "`a **b** c`",
			want:  []Span{{Kind: SpanCode, Text: "a **b** c"}},
		},
		{
			name:  "first closing marker wins",
			input: "**a `b** c`",
			want: []Span{
				{Kind: SpanBold, Text: "a `b"},
				{Kind: SpanText, Text: " c`"},
			},
		},
		{
			name:  "empty spans",
			input: "****``",
			want: []Span{
				{Kind: SpanBold, Text: ""},
				{Kind: SpanCode, Text: ""},
			},
		},
		{
			name:  "multibyte text is preserved",
			input: "Severity → **high** ✅",
			want: []Span{
				{Kind: SpanText, Text: "Severity → "},
				{Kind: SpanBold, Text: "high"},
				{Kind: SpanText, Text: " ✅"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInline(tt.input))
		})
	}
}

func TestParse_NoFenceMeansNoCodeBlocks(t *testing.T) {
	inputs := []string{
		"## Why the code failed\nThe loop is O(N^2).",
		"* `x` is unused\n* **Severity**: low",
		"``two backticks`` are inline",
		"",
		"\n\n\n",
	}
	for _, input := range inputs {
		for _, n := range Parse(input) {
			assert.NotEqual(t, KindCodeBlock, n.Kind, "input %q", input)
		}
	}
}

func TestParse_TextReconstruction(t *testing.T) {
	input := "## Quick **Optimization** Hint\nUse a `map` instead.\n\n* **Issue #1 (Line 4)** off-by-one\nplain **unterminated"
	want := "Quick Optimization Hint\nUse a map instead.\n\nIssue #1 (Line 4) off-by-one\nplain **unterminated"

	nodes := Parse(input)
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.PlainText())
	}
	assert.Equal(t, want, strings.Join(parts, "\n"))
}

// checkReconstruction verifies that nodes parsed from fence-free input give
// back the input once the recognized markers are put back: every line maps
// to one node, the node text is the line minus its block marker, and the
// spans are the node text minus matched inline markers.
func checkReconstruction(t *testing.T, input string, nodes []Node) {
	t.Helper()

	lines := strings.Split(input, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(nodes) != len(lines) {
		t.Fatalf("input %q: got %d nodes for %d lines", input, len(nodes), len(lines))
	}

	for i, n := range nodes {
		line := strings.TrimSuffix(lines[i], "\r")
		var want string
		switch n.Kind {
		case KindHeading:
			prefix := strings.Repeat("#", n.Level) + " "
			if !strings.HasPrefix(line, prefix) {
				t.Fatalf("input %q: heading %q from line %q", input, n.Text, line)
			}
			want = line[len(prefix):]
		case KindListItem:
			at := strings.Index(line, listItemMarker)
			if at < 0 || strings.TrimSpace(line[:at]) != "" {
				t.Fatalf("input %q: list item %q from line %q", input, n.Text, line)
			}
			want = line[:at] + line[at+len(listItemMarker):]
		case KindBlank:
			if strings.TrimSpace(line) != "" {
				t.Fatalf("input %q: blank node from line %q", input, line)
			}
			want = line
		case KindParagraph:
			want = line
		default:
			t.Fatalf("input %q: unexpected %s node", input, n.Kind)
		}
		if n.Text != want {
			t.Fatalf("input %q: node text %q, want %q", input, n.Text, want)
		}
		if n.Kind == KindBlank {
			continue
		}

		var rebuilt strings.Builder
		for _, sp := range n.Spans {
			switch sp.Kind {
			case SpanBold:
				rebuilt.WriteString(boldMarker + sp.Text + boldMarker)
			case SpanCode:
				rebuilt.WriteString(string(codeMarker) + sp.Text + string(codeMarker))
			default:
				rebuilt.WriteString(sp.Text)
			}
		}
		if rebuilt.String() != n.Text {
			t.Fatalf("input %q: spans rebuild %q, want %q", input, rebuilt.String(), n.Text)
		}
	}
}

func TestParse_ReconstructsInputWithoutMarkers(t *testing.T) {
	inputs := []string{
		"## Quick **Optimization** Hint\nUse a `map` instead.",
		"   * nested look\n\t* tabbed `x`\n*not a list*",
		"### a\r\n## b\r\n  \r\n",
		"**unterminated and `code` then **bold**",
		"* \n*  two spaces\n#### deep\n##",
		"`a` `b` ``c`` ****",
	}
	for _, input := range inputs {
		checkReconstruction(t, input, Parse(input))
	}

	var plain []string
	for _, n := range Parse("   * nested **look**") {
		plain = append(plain, n.PlainText())
	}
	assert.Equal(t, []string{"   nested look"}, plain)
}

func TestParse_SinglePass(t *testing.T) {
	first := Parse("`**not bold**` and **`not code`**")
	require.Len(t, first, 1)
	require.Len(t, first[0].Spans, 3)
	assert.Equal(t, Span{Kind: SpanCode, Text: "**not bold**"}, first[0].Spans[0])
	assert.Equal(t, Span{Kind: SpanBold, Text: "`not code`"}, first[0].Spans[2])

	// Span text keeps the markers it contained; they are only interpreted
	// again if a caller explicitly parses that text a second time.
	assert.Equal(t, "**not bold** and `not code`", first[0].PlainText())
}

func TestParse_CodeBlockNeverAltered(t *testing.T) {
	code := "func main() {\n\t// **not bold** `not code`\n\n\t* not a list\n}"
	nodes := Parse("```go\n" + code + "\n```")
	require.Len(t, nodes, 1)
	assert.Equal(t, code, nodes[0].Text)
	assert.Nil(t, nodes[0].Spans)
}

func TestNode_JSON(t *testing.T) {
	nodes := Parse("## Title\n```go\nx\n```")
	data, err := json.Marshal(nodes)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"kind":"heading","level":2,"text":"Title","spans":[{"kind":"text","text":"Title"}]},
		{"kind":"code_block","language":"go","text":"x"}
	]`, string(data))

	var decoded []Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, nodes, decoded)
	assert.Error(t, json.Unmarshal([]byte(`[{"kind":"table"}]`), &decoded))
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"", "## a", "```", "**", "`", "* x\n```go\ny", "****``**",
		"   * nested look", "```\r\na\r\n```\r\nb", "### **x** `y`\r\n\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		nodes := Parse(input)
		for _, n := range nodes {
			if n.Kind == KindCodeBlock && !strings.Contains(input, n.Text) {
				t.Fatalf("code block %q is not part of %q", n.Text, input)
			}
		}
		if strings.Contains(input, fence) {
			return
		}
		for _, n := range nodes {
			if n.Kind == KindCodeBlock {
				t.Fatalf("code block without fence in %q", input)
			}
		}
		if input != "" {
			checkReconstruction(t, input, nodes)
		}
	})
}
