package safety

import "regexp"

// PII masks use fixed placeholder tokens so logs and stored escalations can
// never carry identifying values.
var redactions = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	// Elector photo identity card number, e.g. ABC1234567
	{regexp.MustCompile(`\b[A-Z]{3}[0-9]{7}\b`), "[ID-REDACTED]"},
	// Permanent account number, e.g. ABCDE1234F
	{regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`), "[TAXID-REDACTED]"},
	// Indian mobile numbers, with optional +91/0 prefix
	{regexp.MustCompile(`(\+91[\s-]?|\b0)?[6-9][0-9]{9}\b`), "[PHONE-REDACTED]"},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL-REDACTED]"},
}

// Redact masks PII patterns in text, reporting whether anything was masked
func (s *Service) Redact(text string) (string, bool) {
	redacted := false
	for _, r := range redactions {
		if r.pattern.MatchString(text) {
			text = r.pattern.ReplaceAllString(text, r.replacement)
			redacted = true
		}
	}
	return text, redacted
}
