package topic

import (
	"fmt"
	"strings"
)

// promptInstructions tells the model the three answer shapes ParseAnswer
// understands: a JSON array for itemized results, plain prose for a single
// finding, or an empty string when the page has nothing relevant.
const promptInstructions = `You extract content from web pages.

Find the content on the page below that matches the request.

Rules:
- If the result is a set of items (postings, notices, announcements, rows), respond with a JSON array where every element is an object with "title", "link" and "status" keys. Use "" for a key with no value. Use absolute URLs for links.
- If the result is a single passage of prose, respond with the passage alone.
- If nothing on the page matches the request, respond with an empty string.
- Respond with the extracted content only, no explanations and no markdown fences.`

// BuildPrompt builds the user prompt containing the reduced page and the request.
func BuildPrompt(content, pageURL, query string) string {
	var sb strings.Builder
	sb.WriteString(promptInstructions)
	sb.WriteString("\n\n<page>\n")
	fmt.Fprintf(&sb, "<source>%s</source>\n", pageURL)
	fmt.Fprintf(&sb, "<content>%s</content>\n", content)
	sb.WriteString("</page>\n\n")
	fmt.Fprintf(&sb, "Request: %s", query)
	return sb.String()
}
