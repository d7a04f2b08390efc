package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesift"
	"golang.org/x/net/html"
)

var _ pagesift.CardDetector = (*CardDetector)(nil)

// cardMemberTags are the element types a repeated card can be.
const cardMemberTags = "div, article, li, section, a"

// minGroupScore is the threshold below which a repeating group is
// treated as navigation or decoration rather than content cards.
const minGroupScore = 3

// cardTitleSelectors are tried in order for a card's title.
var cardTitleSelectors = []string{
	"h1", "h2", "h3", "h4",
	".title", `[class*="title"]`, `[class*="name"]`,
	".card-title", ".result-title",
}

// cardDescriptionSelectors are tried in order for a card's description.
var cardDescriptionSelectors = []string{
	".description", ".desc", `[class*="desc"]`,
	"p", ".text", `[class*="text"]`,
	".summary", `[class*="summary"]`,
}

// classHints mark container class and id names that advertise card
// layouts.
var classHints = []string{"card", "item", "result", "product", "grid", "search"}

// CardDetector finds repeating sibling structures and extracts one
// record per repetition. Detection is structural: siblings sharing a
// tag and internal shape form a group, groups are scored for how
// card-like they look, and low scorers are discarded as noise.
type CardDetector struct{}

// NewCardDetector creates a new CardDetector.
func NewCardDetector() *CardDetector {
	return &CardDetector{}
}

// shape fingerprints the tag-level structure inside a candidate.
type shape struct {
	heading bool
	link    bool
	image   bool
	para    bool
}

func memberShape(sel *goquery.Selection) shape {
	return shape{
		heading: sel.Find("h1, h2, h3, h4, h5, h6").Length() > 0,
		link:    sel.Is("a") || sel.Find("a[href]").Length() > 0,
		image:   sel.Find("img").Length() > 0,
		para:    sel.Find("p").Length() > 0,
	}
}

// key flattens the shape for use in a group map key.
func (s shape) key() string {
	var b strings.Builder
	if s.heading {
		b.WriteByte('h')
	}
	if s.link {
		b.WriteByte('a')
	}
	if s.image {
		b.WriteByte('i')
	}
	if s.para {
		b.WriteByte('p')
	}
	return b.String()
}

// record reports whether the shape carries enough structure to hold a
// record. Repeated elements without a heading or link are noise.
func (s shape) record() bool {
	return s.heading || s.link
}

// group is a run of same-shaped siblings under one parent.
type group struct {
	members []*goquery.Selection
	shape   shape
	score   int
	pos     int
}

// DetectCards implements pagesift.CardDetector.
func (d *CardDetector) DetectCards(rawHTML, baseURL string) ([]pagesift.CardItem, error) {
	doc, err := ParseDocument(rawHTML, baseURL)
	if err != nil {
		return nil, err
	}
	doc.Find("script, style").Remove()

	type groupKey struct {
		parent *html.Node
		tag    string
		sig    string
	}

	groups := make(map[groupKey]*group)
	var order []*group

	doc.Find(cardMemberTags).Each(func(i int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node == nil || node.Parent == nil {
			return
		}
		// Empty shells carry no record.
		if textContent(sel) == "" && sel.Find("img").Length() == 0 {
			return
		}
		sh := memberShape(sel)
		if !sh.record() {
			return
		}

		key := groupKey{parent: node.Parent, tag: goquery.NodeName(sel), sig: sh.key()}
		g, ok := groups[key]
		if !ok {
			g = &group{shape: sh, pos: i}
			groups[key] = g
			order = append(order, g)
		}
		g.members = append(g.members, sel)
	})

	var candidates []*group
	for _, g := range order {
		if len(g.members) < 2 {
			continue
		}
		g.score = scoreGroup(g)
		if g.score < minGroupScore {
			continue
		}
		candidates = append(candidates, g)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// Highest-scoring groups claim their subtrees first so a grid and
	// the rows wrapping it are never both extracted.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pos < candidates[j].pos
	})

	claimed := make(map[*html.Node]struct{})
	var accepted []*group
	for _, g := range candidates {
		if overlapsClaimed(g, claimed) {
			continue
		}
		for _, m := range g.members {
			claimed[m.Get(0)] = struct{}{}
		}
		accepted = append(accepted, g)
	}

	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].pos < accepted[j].pos })

	var cards []pagesift.CardItem
	for _, g := range accepted {
		for _, m := range g.members {
			if card, ok := extractCard(doc, m); ok {
				cards = append(cards, card)
			}
		}
	}

	return cards, nil
}

// scoreGroup rates how card-like a sibling group looks.
func scoreGroup(g *group) int {
	first := g.members[0]

	score := 0
	if g.shape.heading {
		score += 2
	}
	if g.shape.link {
		score++
	}
	if g.shape.image {
		score++
	}
	if g.shape.para {
		score++
	}
	if goquery.NodeName(first) == "article" || first.AttrOr("role", "") == "article" {
		score += 2
	}
	if hasClassHint(first) || hasClassHint(first.Parent()) {
		score += 3
	}
	if len(g.members) >= 3 {
		score++
	}
	return score
}

// hasClassHint reports whether the element's class or id advertises a
// card layout.
func hasClassHint(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	attrs := strings.ToLower(sel.AttrOr("class", "") + " " + sel.AttrOr("id", ""))
	for _, hint := range classHints {
		if strings.Contains(attrs, hint) {
			return true
		}
	}
	return false
}

// overlapsClaimed reports whether any member sits at, above or below
// an already claimed element.
func overlapsClaimed(g *group, claimed map[*html.Node]struct{}) bool {
	if len(claimed) == 0 {
		return false
	}
	for _, m := range g.members {
		for n := m.Get(0); n != nil; n = n.Parent {
			if _, ok := claimed[n]; ok {
				return true
			}
		}
		if subtreeClaimed(m.Get(0), claimed) {
			return true
		}
	}
	return false
}

func subtreeClaimed(n *html.Node, claimed map[*html.Node]struct{}) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if _, ok := claimed[c]; ok {
			return true
		}
		if subtreeClaimed(c, claimed) {
			return true
		}
	}
	return false
}

// extractCard pulls title, description, link and image out of one card
// element. Cards with none of title, description or link are dropped.
func extractCard(doc *Document, sel *goquery.Selection) (pagesift.CardItem, bool) {
	var card pagesift.CardItem

	for _, selector := range cardTitleSelectors {
		if found := sel.Find(selector).First(); found.Length() > 0 {
			if text := textContent(found); text != "" {
				card.Title = text
				break
			}
		}
	}

	// The card may itself be the anchor.
	href := sel.AttrOr("href", "")
	if href == "" {
		href = sel.Find("a[href]").First().AttrOr("href", "")
	}
	if href != "" && !isNonHTTPLink(href) {
		card.Link = doc.ResolveURL(href)
	}

	if card.Title == "" {
		card.Title = textContent(sel.Find("a[href]").First())
	}
	if card.Title == "" {
		card.Title = truncate(textContent(sel), 100)
	}

	for _, selector := range cardDescriptionSelectors {
		if found := sel.Find(selector).First(); found.Length() > 0 {
			if text := textContent(found); text != "" && text != card.Title {
				card.Description = text
				break
			}
		}
	}
	if card.Description == "" {
		rest := strings.TrimSpace(strings.Replace(textContent(sel), card.Title, "", 1))
		card.Description = wordPrefix(rest, 50)
	}

	if img := sel.Find("img").First(); img.Length() > 0 {
		if src := imageSource(img); src != "" {
			card.Image = doc.ResolveURL(src)
		}
	}

	if card.Title == "" && card.Description == "" && card.Link == "" {
		return pagesift.CardItem{}, false
	}
	return card, true
}

// truncate cuts text to max runes.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// wordPrefix returns the first n words of text.
func wordPrefix(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
