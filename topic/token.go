package topic

import "unicode/utf8"

// charsPerToken approximates the byte-to-token ratio of current chat models.
const charsPerToken = 4

// EstimateTokens estimates the number of model tokens in text.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// TruncateTokens trims text so its estimated token count fits within budget.
// The cut always lands on a rune boundary.
func TruncateTokens(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	limit := budget * charsPerToken
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
