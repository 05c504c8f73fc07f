package wiki

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

// Only root-relative candidates; absolute URLs in a srcset are left alone.
var reImagePath = regexp.MustCompile(`(^|[\s,])(/images/[^\s,]+)`)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Cards Gallery</title>
	<style>
		body { font-family: Arial, sans-serif; margin: 20px; }
	</style>
</head>
<body>
	%s
</body>
</html>`

// ExtractCardsGallery returns the section of a wiki page that starts at its
// "Cards gallery" heading and runs up to the next heading of the same or a
// higher level. Root-relative links and images are made absolute.
func ExtractCardsGallery(page, baseURL string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	heading := findGalleryHeading(doc)
	if heading == nil {
		return "", domain.ErrSectionNotFound
	}
	level := headingLevel(heading)

	section := []*html.Node{heading}
	for n := nextElement(heading); n != nil; n = nextElement(n) {
		if l := headingLevel(n); l > 0 && l <= level {
			break
		}
		section = append(section, n)
	}

	var buf bytes.Buffer
	for _, n := range section {
		absolutize(n, baseURL)
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render section: %w", err)
		}
	}
	return fmt.Sprintf(pageTemplate, buf.String()), nil
}

func findGalleryHeading(n *html.Node) *html.Node {
	if headingLevel(n) > 0 {
		text := textContent(n)
		if strings.Contains(text, "Cards gallery") || strings.Contains(text, "Card gallery") {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findGalleryHeading(c); h != nil {
			return h
		}
	}
	return nil
}

// headingLevel is 1-6 for h1-h6 and 0 for anything else.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func nextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func absolutize(n *html.Node, baseURL string) {
	if n.Type == html.ElementNode {
		for i, a := range n.Attr {
			switch {
			case n.DataAtom == atom.Img && a.Key == "src" && strings.HasPrefix(a.Val, "/"):
				n.Attr[i].Val = baseURL + a.Val
			case n.DataAtom == atom.Img && a.Key == "srcset":
				n.Attr[i].Val = reImagePath.ReplaceAllString(a.Val, "${1}"+strings.ReplaceAll(baseURL, "$", "$$")+"${2}")
			case n.DataAtom == atom.A && a.Key == "href" && strings.HasPrefix(a.Val, "/"):
				n.Attr[i].Val = baseURL + a.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		absolutize(c, baseURL)
	}
}
