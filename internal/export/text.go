package export

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText flattens a description that may carry rich-text HTML into
// single-spaced text. Plain input is returned with whitespace collapsed.
func PlainText(value string) string {
	if !strings.Contains(value, "<") {
		return collapse(value)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return collapse(value)
	}
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, li, div, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return collapse(doc.Text())
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 3 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
