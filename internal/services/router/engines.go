package router

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
)

// engineConfidence applies to every engine response; the content is curated,
// so uncertainty lives only in whether the category was right.
const engineConfidence = 0.9

// engineResponses holds the canned multi-paragraph responses, keyed by
// category then locale. Categories absent here are unserved and fall through
// to the retrieval pipeline.
var engineResponses = map[models.Category]map[string]string{
	models.CategoryFormGuidance: {
		"en": "Voter registration forms:\n\n" +
			"Form 6 — new voter registration. Apply online at voters.eci.gov.in or submit to your Booth Level Officer. " +
			"You need proof of age and residence.\n\n" +
			"Form 8 — corrections, address change within or across constituencies, and replacement of a lost EPIC card.\n\n" +
			"Form 12D — postal ballot opt-in for electors above 85 or with benchmark disabilities; submit within five days of the election notification.\n\n" +
			"Track any application's status in the Voter Helpline app.",
		"hi": "मतदाता पंजीकरण फॉर्म:\n\n" +
			"फॉर्म 6 — नए मतदाता का पंजीकरण। voters.eci.gov.in पर ऑनलाइन आवेदन करें या अपने बूथ लेवल अधिकारी को जमा करें। " +
			"आयु और निवास का प्रमाण आवश्यक है।\n\n" +
			"फॉर्म 8 — संशोधन, पते में बदलाव, और खोए हुए EPIC कार्ड का पुनर्निर्गम।\n\n" +
			"फॉर्म 12D — 85 वर्ष से अधिक या दिव्यांग मतदाताओं के लिए डाक मतपत्र; अधिसूचना के पांच दिनों के भीतर जमा करें।\n\n" +
			"आवेदन की स्थिति Voter Helpline ऐप में देखें।",
	},
	models.CategoryVotingRules: {
		"en": "Voting essentials:\n\n" +
			"Carry your EPIC card or an accepted photo ID (Aadhaar, passport, driving licence, PAN card). " +
			"A voter slip alone is not valid identification.\n\n" +
			"Polling hours are typically 7 AM to 6 PM; anyone in the queue at closing time may still vote.\n\n" +
			"You vote on an EVM and verify your choice on the VVPAT slip shown for seven seconds. " +
			"NOTA is available if no candidate is acceptable.",
		"hi": "मतदान की मुख्य बातें:\n\n" +
			"अपना EPIC कार्ड या मान्य फोटो पहचान पत्र (आधार, पासपोर्ट, ड्राइविंग लाइसेंस, PAN कार्ड) साथ रखें। " +
			"केवल मतदाता पर्ची मान्य पहचान नहीं है।\n\n" +
			"मतदान आमतौर पर सुबह 7 बजे से शाम 6 बजे तक होता है; समापन पर कतार में खड़े सभी लोग वोट दे सकते हैं।\n\n" +
			"EVM पर वोट दें और VVPAT पर्ची से सात सेकंड में पुष्टि करें। कोई उम्मीदवार स्वीकार्य न हो तो NOTA उपलब्ध है।",
	},
	models.CategoryComplaint: {
		"en": "How to file an election complaint:\n\n" +
			"Model Code of Conduct violations (cash, liquor, hate speech, campaigning in the silence period): " +
			"use the cVIGIL app with a photo or video. Complaints are acted on within 100 minutes.\n\n" +
			"Polling day issues at your booth: speak to the Presiding Officer, or call the District Election Officer.\n\n" +
			"Anything else: the 1950 voter helpline registers complaints in English and Hindi.",
		"hi": "चुनाव संबंधी शिकायत कैसे करें:\n\n" +
			"आदर्श आचार संहिता के उल्लंघन (नकद, शराब, भड़काऊ भाषण, मौन अवधि में प्रचार): " +
			"cVIGIL ऐप पर फोटो या वीडियो के साथ शिकायत करें। 100 मिनट में कार्रवाई होती है।\n\n" +
			"मतदान के दिन बूथ की समस्या: पीठासीन अधिकारी से बात करें या जिला निर्वाचन अधिकारी को कॉल करें।\n\n" +
			"अन्य शिकायतें: 1950 मतदाता हेल्पलाइन पर दर्ज कराएं।",
	},
	models.CategoryTimeline: {
		"en": "Election timeline, counted from the notification date:\n\n" +
			"Nominations stay open for seven days, scrutiny follows the next day, and withdrawals close two days after that.\n\n" +
			"Campaigning ends 48 hours before polling — the silence period.\n\n" +
			"Polling, counting and result dates are published in the schedule on eci.gov.in for each election.",
		"hi": "चुनाव समय-सारणी, अधिसूचना की तारीख से:\n\n" +
			"नामांकन सात दिनों तक खुले रहते हैं, अगले दिन जांच होती है, और दो दिन बाद नाम वापसी बंद होती है।\n\n" +
			"मतदान से 48 घंटे पहले प्रचार समाप्त हो जाता है — मौन अवधि।\n\n" +
			"मतदान, मतगणना और परिणाम की तारीखें हर चुनाव के लिए eci.gov.in पर प्रकाशित होती हैं।",
	},
}

// Engine is the deterministic civic-content collaborator: canned responses
// from curated content, no model call, synchronous.
type Engine struct {
	logger arbor.ILogger
}

// NewEngine creates the deterministic engine
func NewEngine(logger arbor.ILogger) *Engine {
	return &Engine{logger: logger}
}

// Respond returns the canned response for the category, or (nil, false) when
// no engine serves it.
func (e *Engine) Respond(ctx context.Context, category models.Category, subIntent, query, locale string) (*models.EngineResult, bool) {
	responses, ok := engineResponses[category]
	if !ok {
		return nil, false
	}

	text, ok := responses[locale]
	if !ok {
		text = responses["en"]
	}

	e.logger.Debug().
		Str("category", string(category)).
		Str("sub_intent", subIntent).
		Msg("Engine served canned response")

	return &models.EngineResult{
		FormattedResponse: text,
		Confidence:        engineConfidence,
	}, true
}

// Ensure Engine implements the engine interface
var _ interfaces.EngineService = (*Engine)(nil)
