package content

import "strings"

// wordsPerMinute is the assumed reading speed
const wordsPerMinute = 200

// CalculateReadTime approximates reading time in whole minutes:
// whitespace-delimited word count divided by 200, rounded up.
// Content without any words still displays as one minute.
func CalculateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
