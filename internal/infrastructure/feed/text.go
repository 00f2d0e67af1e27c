package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup reduces an HTML fragment to whitespace-normalized plain text.
// Script and style contents are removed; unparsable input is returned with
// tags left in rather than raising.
func StripMarkup(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeWhitespace(html)
	}
	doc.Find("script, style, noscript").Remove()
	return normalizeWhitespace(doc.Text())
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
