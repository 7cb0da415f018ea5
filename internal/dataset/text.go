package dataset

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText collapses runs of whitespace (including non-breaking spaces) to one space.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// HTMLToText reduces an HTML fragment to plain text. Block elements are
// separated by a space so "<li>a</li><li>b</li>" does not read as "ab".
// Input that does not look like markup is only whitespace-cleaned.
func HTMLToText(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return CleanText(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	doc.Find("script, style").Remove()
	doc.Find("p, li, br, div, tr, td, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AfterHtml(" ")
	})
	return CleanText(doc.Find("body").Text())
}
