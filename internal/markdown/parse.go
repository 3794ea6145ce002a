package markdown

import (
	"strings"
)

const (
	fence          = "```"
	h2Prefix       = "## "
	h3Prefix       = "### "
	listItemMarker = "* "
	boldMarker     = "**"
	codeMarker     = '`'
)

// segment is a slice of the input that is either a fenced code block or
// ordinary text.
type segment struct {
	text     string
	language string
	code     bool
}

// Parse converts text into display nodes in input order. It is a pure
// function: malformed constructs degrade to literal text and never fail.
func Parse(text string) []Node {
	var nodes []Node
	for _, seg := range splitFences(text) {
		if seg.code {
			nodes = append(nodes, Node{Kind: KindCodeBlock, Language: seg.language, Text: seg.text})
			continue
		}
		nodes = append(nodes, parseLines(seg.text)...)
	}
	return nodes
}

// splitFences cuts the input at fenced code blocks. An opening fence without a
// matching close turns the rest of the input into a single code segment.
func splitFences(s string) []segment {
	var segs []segment
	afterFence := false
	for s != "" {
		open := strings.Index(s, fence)
		if open < 0 {
			segs = appendText(segs, s, afterFence)
			break
		}
		if open > 0 {
			segs = appendText(segs, s[:open], afterFence)
		}

		body := s[open+len(fence):]
		end := strings.Index(body, fence)
		closed := end >= 0
		if closed {
			s = body[end+len(fence):]
			body = body[:end]
		} else {
			s = ""
		}
		segs = append(segs, codeSegment(body, closed))
		afterFence = true
	}
	return segs
}

func appendText(segs []segment, text string, afterFence bool) []segment {
	if afterFence {
		// The line break ending a closing fence line belongs to the fence.
		text = trimLeadingNewline(text)
	}
	if text == "" {
		return segs
	}
	return append(segs, segment{text: text})
}

// codeSegment strips the language tag and the newlines adjacent to the fences.
// Everything else is kept byte for byte.
func codeSegment(body string, closed bool) segment {
	tagEnd := 0
	for tagEnd < len(body) && isLanguageByte(body[tagEnd]) {
		tagEnd++
	}
	language := body[:tagEnd]
	rest := body[tagEnd:]

	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && strings.TrimSpace(rest[:nl]) == "" {
		rest = rest[nl+1:]
	}
	if closed {
		rest = trimTrailingNewline(rest)
	}
	return segment{text: rest, language: language, code: true}
}

func trimLeadingNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}

func trimTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

func isLanguageByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '+', c == '#', c == '.', c == '-':
		return true
	}
	return false
}

func parseLines(text string) []Node {
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	nodes := make([]Node, 0, len(lines))
	for _, line := range lines {
		nodes = append(nodes, classifyLine(strings.TrimSuffix(line, "\r")))
	}
	return nodes
}

func classifyLine(line string) Node {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, h2Prefix):
		return textNode(KindHeading, 2, line[len(h2Prefix):])
	case strings.HasPrefix(line, h3Prefix):
		return textNode(KindHeading, 3, line[len(h3Prefix):])
	case strings.HasPrefix(trimmed, listItemMarker):
		// Only the marker is removed; indentation before it stays.
		i := strings.Index(line, listItemMarker)
		return textNode(KindListItem, 0, line[:i]+line[i+len(listItemMarker):])
	case trimmed == "":
		return Node{Kind: KindBlank, Text: line}
	default:
		return textNode(KindParagraph, 0, line)
	}
}

func textNode(kind Kind, level int, text string) Node {
	return Node{Kind: kind, Level: level, Text: text, Spans: ParseInline(text)}
}

// ParseInline splits text into plain, bold and inline-code spans, scanning
// left to right. Spans never nest. An opening marker without a closing one is
// kept as literal text.
func ParseInline(text string) []Span {
	var (
		spans  []Span
		plain  strings.Builder
		noBold bool // no closing ** exists past the current position
		noCode bool // no closing ` exists past the current position
	)
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		if !noBold && strings.HasPrefix(text[i:], boldMarker) {
			start := i + len(boldMarker)
			if end := strings.Index(text[start:], boldMarker); end >= 0 {
				flush()
				spans = append(spans, Span{Kind: SpanBold, Text: text[start : start+end]})
				i = start + end + len(boldMarker)
				continue
			}
			noBold = true
		}
		if !noCode && text[i] == codeMarker {
			start := i + 1
			if end := strings.IndexByte(text[start:], codeMarker); end >= 0 {
				flush()
				spans = append(spans, Span{Kind: SpanCode, Text: text[start : start+end]})
				i = start + end + 1
				continue
			}
			noCode = true
		}
		plain.WriteByte(text[i])
		i++
	}
	flush()
	return spans
}
