package entry

import (
	"html"
	"regexp"
	"strings"

	"github.com/muesli/reflow/truncate"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	spacePattern     = regexp.MustCompile(`\s+`)
	emptyParaPattern = regexp.MustCompile(`(?i)<p>\s*<br\s*/?>\s*</p>`)
	breakPattern     = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|blockquote)>`)
)

// PlainText strips markup from rich content for previews and search.
func PlainText(content string) string {
	s := tagPattern.ReplaceAllString(content, " ")
	s = html.UnescapeString(s)
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Preview is the plain text of the content cut to width cells.
func (e *Entry) Preview(width int) string {
	text := PlainText(e.Content)
	if width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

// Paragraphs turns rich content into editable text with one paragraph per
// line.
func Paragraphs(content string) string {
	s := emptyParaPattern.ReplaceAllString(content, "\n")
	s = breakPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// FromParagraphs is the inverse of Paragraphs: each line becomes a <p>, blank
// lines become empty paragraphs.
func FromParagraphs(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			b.WriteString("<p><br></p>")
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}
