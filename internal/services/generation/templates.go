package generation

import "strings"

// template is a deterministic fallback answer served when the provider is
// unreachable or its output is unusable.
type template struct {
	keywords   []string // Any match selects this template
	confidence float64
	en         string
	hi         string
}

func (t *template) text(locale string) string {
	if locale == "hi" {
		return t.hi
	}
	return t.en
}

// Keyword templates cover the four highest-volume topics; matching ones carry
// enough confidence to avoid escalation, the generic one deliberately does not.
var templates = []template{
	{
		keywords:   []string{"register", "registration", "form 6", "enroll", "पंजीकरण", "नामांकन"},
		confidence: 0.75,
		en: "To register as a voter, fill Form 6 online at voters.eci.gov.in or through the Voter Helpline app. " +
			"You must be an Indian citizen and at least 18 years old. For help, call the voter helpline 1950.",
		hi: "मतदाता के रूप में पंजीकरण के लिए voters.eci.gov.in पर या Voter Helpline ऐप से फॉर्म 6 भरें। " +
			"आपको भारतीय नागरिक और कम से कम 18 वर्ष का होना चाहिए। सहायता के लिए 1950 पर कॉल करें।",
	},
	{
		keywords:   []string{"booth", "polling station", "where do i vote", "मतदान केंद्र", "बूथ"},
		confidence: 0.75,
		en: "Find your polling booth at electoralsearch.eci.gov.in by searching with your EPIC ID, " +
			"or SMS your EPIC number to 1950. Your voter information slip also lists the booth address.",
		hi: "अपना मतदान केंद्र electoralsearch.eci.gov.in पर EPIC आईडी से खोजें, " +
			"या अपना EPIC नंबर 1950 पर SMS करें। मतदाता पर्ची पर भी बूथ का पता होता है।",
	},
	{
		keywords:   []string{"document", "id card", "identity", "aadhaar", "epic card", "दस्तावेज़", "पहचान"},
		confidence: 0.75,
		en: "On polling day, carry your EPIC card or an accepted photo ID such as Aadhaar, passport, " +
			"driving licence or PAN card. A voter slip alone is not valid identification.",
		hi: "मतदान के दिन अपना EPIC कार्ड या आधार, पासपोर्ट, ड्राइविंग लाइसेंस जैसा मान्य फोटो पहचान पत्र साथ रखें। " +
			"केवल मतदाता पर्ची मान्य पहचान नहीं है।",
	},
	{
		keywords:   []string{"complaint", "violation", "report", "cvigil", "bribe", "शिकायत", "उल्लंघन"},
		confidence: 0.75,
		en: "Report Model Code of Conduct violations through the cVIGIL app with a photo or video; " +
			"complaints are acted on within 100 minutes. You can also call the 1950 helpline.",
		hi: "आदर्श आचार संहिता के उल्लंघन की शिकायत cVIGIL ऐप पर फोटो या वीडियो के साथ करें; " +
			"100 मिनट में कार्रवाई होती है। आप 1950 हेल्पलाइन पर भी कॉल कर सकते हैं।",
	},
}

// genericTemplate is the last resort; its low confidence forces escalation
var genericTemplate = template{
	confidence: 0.3,
	en: "I could not generate a reliable answer right now. Please call the voter helpline 1950 " +
		"or visit voters.eci.gov.in for official information.",
	hi: "अभी विश्वसनीय उत्तर नहीं दिया जा सका। कृपया मतदाता हेल्पलाइन 1950 पर कॉल करें " +
		"या आधिकारिक जानकारी के लिए voters.eci.gov.in देखें।",
}

// matchTemplate returns the first keyword template matching the query, or the
// generic one.
func matchTemplate(query string) *template {
	lower := strings.ToLower(query)
	for i := range templates {
		for _, kw := range templates[i].keywords {
			if strings.Contains(lower, kw) {
				return &templates[i]
			}
		}
	}
	return &genericTemplate
}
