package safety

import (
	"regexp"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
)

// Neutral substitute responses, one per locale
var neutralResponses = map[models.SafetyRule]map[string]string{
	models.RulePoliticalQuery: {
		"en": "I can't advise on who to vote for. I can help with registration, finding your polling booth, " +
			"required documents and the voting process. The choice of candidate is yours alone.",
		"hi": "मैं यह सलाह नहीं दे सकता कि किसे वोट दें। मैं पंजीकरण, मतदान केंद्र, आवश्यक दस्तावेज़ों और " +
			"मतदान प्रक्रिया में मदद कर सकता हूँ। उम्मीदवार का चुनाव पूरी तरह आपका है।",
	},
	models.RuleOutOfScopeTopic: {
		"en": "I can only help with election and voter services: registration, polling booths, documents, " +
			"complaints and election schedules. For other topics, please consult the appropriate service.",
		"hi": "मैं केवल चुनाव और मतदाता सेवाओं में मदद कर सकता हूँ: पंजीकरण, मतदान केंद्र, दस्तावेज़, " +
			"शिकायतें और चुनाव कार्यक्रम। अन्य विषयों के लिए कृपया संबंधित सेवा से संपर्क करें।",
	},
	models.RuleAdversarial: {
		"en": "I can't help with that. For official election information, visit eci.gov.in or call the " +
			"voter helpline 1950.",
		"hi": "मैं इसमें मदद नहीं कर सकता। आधिकारिक चुनाव जानकारी के लिए eci.gov.in देखें या " +
			"मतदाता हेल्पलाइन 1950 पर कॉल करें।",
	},
	models.RulePoliticalResponse: {
		"en": "Here's what I can tell you: for official, neutral election information, visit eci.gov.in or " +
			"call the voter helpline 1950. I can't share opinions about parties or candidates.",
		"hi": "आधिकारिक और निष्पक्ष चुनाव जानकारी के लिए eci.gov.in देखें या मतदाता हेल्पलाइन 1950 पर " +
			"कॉल करें। मैं दलों या उम्मीदवारों के बारे में राय साझा नहीं कर सकता।",
	},
}

var (
	politicalQueryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(who|which\s+(party|candidate))\s+(should|do)\s+i\s+vote\s+for\b`),
		regexp.MustCompile(`(?i)\b(best|worst)\s+(party|candidate|government|leader)\b`),
		regexp.MustCompile(`(?i)\bwho\s+will\s+win\b`),
		regexp.MustCompile(`(?i)\b(support|oppose)\s+.{0,30}\b(party|candidate|bjp|congress|aap)\b`),
		regexp.MustCompile(`किसे\s+वोट`),
		regexp.MustCompile(`कौन\s+जीतेगा`),
		regexp.MustCompile(`(सबसे\s+)?(अच्छी|बुरी)\s+पार्टी`),
	}

	outOfScopePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(cricket|movie|recipe|weather|stock\s+(price|market))\b`),
		regexp.MustCompile(`(?i)\b(write|debug|fix)\s+.{0,20}\b(code|program|script)\b`),
		regexp.MustCompile(`(?i)\b(medical|legal)\s+advice\b`),
	}

	adversarialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bignore\s+(all\s+)?(previous|prior|above|your)\s+(instructions?|rules?|prompts?)\b`),
		regexp.MustCompile(`(?i)\b(pretend|act\s+as\s+if|roleplay)\s+.{0,30}\b(no\s+restrictions?|unrestricted|different\s+ai)\b`),
		regexp.MustCompile(`(?i)\byou\s+are\s+now\s+`),
		regexp.MustCompile(`(?i)\b(system\s+prompt|jailbreak)\b`),
		regexp.MustCompile(`(?i)\breveal\s+your\s+(instructions?|prompt|rules)\b`),
	}

	politicalResponsePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\byou\s+should\s+vote\s+for\b`),
		regexp.MustCompile(`(?i)\b(is|are)\s+(the\s+)?(better|best|worse|worst)\s+(choice|option|party|candidate)\b`),
		regexp.MustCompile(`(?i)\bi\s+(recommend|suggest)\s+voting\b`),
	}
)

// Service enforces political neutrality over queries and candidate responses.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new safety service
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Check runs the four rules in order: political query, out-of-scope topic,
// adversarial input, then political response. The first match wins and
// supplies the substitute text; query rules outrank response rules so the
// substitute addresses what the user actually asked.
func (s *Service) Check(candidateText, userQuery, locale string) *models.SafetyResult {
	checks := []struct {
		rule     models.SafetyRule
		patterns []*regexp.Regexp
		target   string
	}{
		{models.RulePoliticalQuery, politicalQueryPatterns, userQuery},
		{models.RuleOutOfScopeTopic, outOfScopePatterns, userQuery},
		{models.RuleAdversarial, adversarialPatterns, userQuery},
		{models.RulePoliticalResponse, politicalResponsePatterns, candidateText},
	}

	for _, check := range checks {
		for _, pattern := range check.patterns {
			if pattern.MatchString(check.target) {
				s.logger.Info().
					Str("rule", string(check.rule)).
					Msg("Safety rule flagged interaction")
				return &models.SafetyResult{
					Flagged:  true,
					Rule:     check.rule,
					Response: neutralResponse(check.rule, locale),
				}
			}
		}
	}

	return &models.SafetyResult{}
}

func neutralResponse(rule models.SafetyRule, locale string) string {
	responses := neutralResponses[rule]
	if text, ok := responses[locale]; ok {
		return text
	}
	return responses["en"]
}

// Ensure Service implements the safety interface
var _ interfaces.SafetyService = (*Service)(nil)
