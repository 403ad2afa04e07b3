package retrieval

import (
	"math"
	"strings"
	"unicode"
)

// tokensPerWord approximates subword tokenization overhead for mixed
// English/Hindi text.
const tokensPerWord = 1.3

// tokenize lower-cases and splits on anything that is not a letter or digit.
// Devanagari codepoints are letters, so Hindi text tokenizes without special
// handling.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// estimateTokens approximates the token cost of a passage for budgeting
func estimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Ceil(float64(words) * tokensPerWord))
}
