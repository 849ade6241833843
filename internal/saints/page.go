package saints

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Markers returns every bold element whose text is exactly label. A day can be
// listed under several headings when feasts are shared.
func Markers(doc *goquery.Document, label string) []*html.Node {
	return doc.Find("b").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Text() == label
	}).Nodes
}

// ImageSource returns the src of the first image whose alt text is exactly name.
func ImageSource(doc *goquery.Document, name string) (string, bool) {
	var (
		src   string
		found bool
	)

	doc.Find("img[alt]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if alt, _ := s.Attr("alt"); alt != name {
			return true
		}
		src, found = s.Attr("src")
		return false
	})

	return src, found && src != ""
}

// ResolveImage builds the absolute URL of an image. Relative sources are appended
// verbatim to base; absolute http(s) sources are returned unchanged.
func ResolveImage(base *url.URL, src string) string {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return src
	}
	return base.String() + src
}
