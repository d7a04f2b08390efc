package topic

import (
	"strings"

	"golang.org/x/net/html"
)

// reduce shrinks a raw page to readable text for the model. Extractors run in
// order until one yields content; the converter turns the winning HTML into
// markdown. When every stage fails the raw page text is used as-is.
func (r *Resolver) reduce(rawHTML string) string {
	for _, ex := range r.Extractors {
		res, err := ex.Extract(rawHTML)
		if err != nil || res == nil || strings.TrimSpace(res.ContentHTML) == "" {
			continue
		}
		if r.Converter != nil {
			md, err := r.Converter.Convert(res.ContentHTML)
			if err == nil && strings.TrimSpace(md) != "" {
				md = strings.TrimSpace(md)
				if res.Title != "" {
					md = "# " + res.Title + "\n\n" + md
				}
				return md
			}
		}
		if text := PlainText(res.ContentHTML); text != "" {
			return text
		}
	}
	return PlainText(rawHTML)
}

// PlainText strips tags from an HTML fragment and collapses whitespace.
// Script, style and noscript subtrees are skipped.
func PlainText(rawHTML string) string {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return strings.Join(strings.Fields(rawHTML), " ")
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.Join(strings.Fields(sb.String()), " ")
}
