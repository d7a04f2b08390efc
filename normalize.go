package pagesift

// Normalization maps every strategy's raw output onto the canonical
// result shapes, so consumers never need to know which strategy
// produced the data.

// NormalizeEntries applies the list/prose disambiguation rule: more
// than one entry, or a single entry carrying a link, classifies as a
// list; a single entry without a link is a prose passage. A lone
// passage that happens to carry a citation link therefore still
// classifies as a list, which existing consumers rely on.
func NormalizeEntries(entries []ResultListEntry) *ScrapeResult {
	switch {
	case len(entries) == 0:
		return &ScrapeResult{}
	case len(entries) == 1 && entries[0].Link == "":
		text := entries[0].Text
		if text == "" {
			text = entries[0].Title
		}
		return &ScrapeResult{Kind: KindText, Text: &TextItem{Title: entries[0].Title, Text: text}}
	default:
		return &ScrapeResult{Kind: KindList, Entries: entries}
	}
}

// NormalizeTexts maps keyword passages through the same rule as
// NormalizeEntries. Passages never carry links, so a single passage is
// always prose and several become a list.
func NormalizeTexts(items []TextItem) *ScrapeResult {
	entries := make([]ResultListEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, ResultListEntry{Title: item.Title, Text: item.Text})
	}
	return NormalizeEntries(entries)
}

// NormalizeImages wraps images as a sequence result. A single image is
// still a sequence of one.
func NormalizeImages(items []ImageItem) *ScrapeResult {
	if len(items) == 0 {
		return &ScrapeResult{}
	}
	return &ScrapeResult{Kind: KindImages, Images: items}
}

// NormalizeLinks wraps links as a sequence result.
func NormalizeLinks(items []LinkItem) *ScrapeResult {
	if len(items) == 0 {
		return &ScrapeResult{}
	}
	return &ScrapeResult{Kind: KindLinks, Links: items}
}

// NormalizeCards wraps cards as a sequence result.
func NormalizeCards(items []CardItem) *ScrapeResult {
	if len(items) == 0 {
		return &ScrapeResult{}
	}
	return &ScrapeResult{Kind: KindCards, Cards: items}
}
