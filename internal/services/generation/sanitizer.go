package generation

import (
	"regexp"
	"strings"
)

// Reasoning-capable models leak their deliberation in two ways: delimited
// blocks when the serving layer passes them through, and bare leading
// paragraphs when the delimiters are stripped upstream but the content is not.
// DefaultSanitizer handles both.
type DefaultSanitizer struct{}

// NewDefaultSanitizer returns the stock sanitizer
func NewDefaultSanitizer() *DefaultSanitizer {
	return &DefaultSanitizer{}
}

var (
	// Delimited reasoning blocks, including unterminated ones where the model
	// hit the token limit mid-thought
	reasoningBlock = regexp.MustCompile(`(?is)<(think|thinking|reasoning|reflection)>.*?</(think|thinking|reasoning|reflection)>`)
	openBlock      = regexp.MustCompile(`(?is)<(think|thinking|reasoning|reflection)>.*$`)

	// Openers that mark a paragraph as deliberation rather than answer
	reasoningOpeners = []string{
		"okay,", "okay so", "ok,", "hmm", "alright,",
		"let me", "let's think", "let's see",
		"first, i", "so the user", "the user is asking", "the user wants",
		"i need to", "i should", "i'll start", "thinking about",
		"looking at the context", "based on my reasoning",
	}

	// Formatted openers mark the start of a deliberate answer even when the
	// paragraph is short
	formattedOpener = regexp.MustCompile(`^(#{1,3}\s|[-*•]\s|\d+[.)]\s|\*\*)`)
)

// Sanitize strips reasoning leakage and returns the answer text. The answer
// starts at the first paragraph that is formatted, or longer than 30
// characters without a reasoning opener; everything before it is dropped.
func (s *DefaultSanitizer) Sanitize(raw string) string {
	cleaned := reasoningBlock.ReplaceAllString(raw, "")
	cleaned = openBlock.ReplaceAllString(cleaned, "")

	paragraphs := strings.Split(cleaned, "\n\n")
	start := -1
	for i, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if formattedOpener.MatchString(p) {
			start = i
			break
		}
		if len(p) > 30 && !looksLikeReasoning(p) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	return strings.TrimSpace(strings.Join(paragraphs[start:], "\n\n"))
}

func looksLikeReasoning(paragraph string) bool {
	lower := strings.ToLower(paragraph)
	for _, opener := range reasoningOpeners {
		if strings.HasPrefix(lower, opener) {
			return true
		}
	}
	return false
}
