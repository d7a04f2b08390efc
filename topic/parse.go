package topic

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fwojciec/pagesift"
)

var (
	fenceRE        = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	arrayRE        = regexp.MustCompile(`(?s)\[.*\]`)
	objectRE       = regexp.MustCompile(`(?s)\{.*\}`)
	listLineRE     = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)`)
	markdownLinkRE = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	parenStatusRE  = regexp.MustCompile(`\(([^()]+)\)$`)
)

// emptyMarkers are answers models use to report that nothing on the page
// matched the request.
var emptyMarkers = map[string]bool{
	`""`:   true,
	`''`:   true,
	`[]`:   true,
	`null`: true,
}

// answerEntry mirrors the object shape the prompt asks the model for. Text is
// accepted as an alias some models use for prose fields.
type answerEntry struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Link   string `json:"link"`
	Status string `json:"status"`
}

// ParseAnswer converts a raw model answer into result entries. An empty
// result means the model reported nothing relevant. JSON answers are
// preferred; a markdown list is accepted as a fallback, and anything else is
// kept whole as a single prose entry.
func ParseAnswer(answer string) []pagesift.ResultListEntry {
	answer = strings.TrimSpace(stripInvisible(answer))
	if answer == "" || emptyMarkers[answer] {
		return nil
	}
	if entries, ok := parseJSON(answer); ok {
		return entries
	}
	if entries := parseLines(answer); len(entries) > 0 {
		return entries
	}
	return []pagesift.ResultListEntry{{Text: strings.TrimSpace(unfence(answer))}}
}

func parseJSON(answer string) ([]pagesift.ResultListEntry, bool) {
	raw := extractJSON(answer)
	if raw == "" {
		return nil, false
	}

	var items []answerEntry
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		items = unwrapObject(raw)
		if items == nil {
			return nil, false
		}
	}

	entries := make([]pagesift.ResultListEntry, 0, len(items))
	for _, it := range items {
		e := pagesift.ResultListEntry{
			Title:  strings.TrimSpace(it.Title),
			Text:   strings.TrimSpace(it.Text),
			Link:   strings.TrimSpace(it.Link),
			Status: strings.TrimSpace(it.Status),
		}
		if e.Title == "" && e.Text == "" && e.Link == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, true
}

// extractJSON isolates the JSON payload from an answer that may wrap it in a
// code fence or surrounding prose.
func extractJSON(answer string) string {
	if m := fenceRE.FindStringSubmatch(answer); m != nil {
		answer = strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(answer, "[") || strings.HasPrefix(answer, "{") {
		return answer
	}
	if m := arrayRE.FindString(answer); m != "" {
		return m
	}
	if m := objectRE.FindString(answer); m != "" {
		return m
	}
	return ""
}

// unwrapObject handles a model answering with a single object or with the
// array nested under a common wrapper key.
func unwrapObject(raw string) []answerEntry {
	var wrapper struct {
		Items   []answerEntry `json:"items"`
		Results []answerEntry `json:"results"`
		Entries []answerEntry `json:"entries"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		return nil
	}
	switch {
	case wrapper.Items != nil:
		return wrapper.Items
	case wrapper.Results != nil:
		return wrapper.Results
	case wrapper.Entries != nil:
		return wrapper.Entries
	}
	var single answerEntry
	if err := json.Unmarshal([]byte(raw), &single); err != nil {
		return nil
	}
	return []answerEntry{single}
}

func parseLines(answer string) []pagesift.ResultListEntry {
	var entries []pagesift.ResultListEntry
	for _, line := range strings.Split(answer, "\n") {
		m := listLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if e := lineEntry(m[1]); e != (pagesift.ResultListEntry{}) {
			entries = append(entries, e)
		}
	}
	return entries
}

// lineEntry splits one list line into title, link and status. A markdown link
// keeps its text in the title; a short trailing " - Foo" tail or a trailing
// parenthesized tag becomes the status.
func lineEntry(line string) pagesift.ResultListEntry {
	var e pagesift.ResultListEntry
	if m := markdownLinkRE.FindStringSubmatch(line); m != nil {
		e.Link = strings.TrimSpace(m[2])
		line = strings.Replace(line, m[0], m[1], 1)
	}
	line = strings.TrimSpace(line)
	if idx := strings.LastIndex(line, " - "); idx >= 0 {
		tail := strings.TrimSpace(line[idx+3:])
		if tail != "" && len(tail) <= 24 && len(strings.Fields(tail)) <= 3 {
			e.Status = tail
			line = strings.TrimSpace(line[:idx])
		}
	} else if m := parenStatusRE.FindStringSubmatch(line); m != nil {
		e.Status = strings.TrimSpace(m[1])
		line = strings.TrimSpace(strings.TrimSuffix(line, m[0]))
	}
	e.Title = line
	if e.Title == "" && e.Link == "" {
		return pagesift.ResultListEntry{}
	}
	return e
}

func unfence(s string) string {
	if m := fenceRE.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// stripInvisible removes zero-width characters that some models leak into
// answers and that break JSON detection.
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, s)
}
