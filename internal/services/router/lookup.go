package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/services/kb"
)

// lookupConfidence applies to structured lookups resolved against loaded data
const lookupConfidence = 0.95

// Structured-lookup recognizers. These run on the raw query, independent of
// the classifier, so an exact identifier or a clear report intent is honored
// even when classification is uncertain.
var (
	boothLookupPattern     = regexp.MustCompile(`(?i)booth\s+(?:number\s+|no\.?\s*)?([0-9]{1,4})\b`)
	epicLookupPattern      = regexp.MustCompile(`\b[A-Z]{3}[0-9]{7}\b`)
	violationLookupPattern = regexp.MustCompile(`(?i)cvigil|c-vigil|code\s+of\s+conduct|\bmcc\b|report(?:ing)?\s+(?:an?\s+)?(?:poll|election|electoral|mcc)?\s*violation|आचार\s*संहिता|उल्लंघन`)
)

// structuredLookup resolves queries that carry a recognizable lookup shape
// without touching any model: a booth number against the loaded booth records,
// an EPIC number routed to the status portal, or a conduct-violation report
// routed to cVIGIL. Returns nil when no recognizer matches.
func structuredLookup(collection *kb.Collection, query, locale string) *models.LookupResult {
	if m := boothLookupPattern.FindStringSubmatch(query); m != nil {
		return lookupBooth(collection, m[1], locale)
	}

	if epic := epicLookupPattern.FindString(strings.ToUpper(query)); epic != "" {
		return &models.LookupResult{
			Kind:       "registration_status",
			Params:     map[string]string{"epic_number": epic},
			Response:   registrationStatusResponse(epic, locale),
			Confidence: lookupConfidence,
		}
	}

	if violationLookupPattern.MatchString(query) {
		return &models.LookupResult{
			Kind:       "violation_report",
			Response:   violationReportResponse(locale),
			Confidence: lookupConfidence,
		}
	}

	return nil
}

// lookupBooth answers from the loaded booth records when the booth number is
// known, and points to the official search otherwise.
func lookupBooth(collection *kb.Collection, booth, locale string) *models.LookupResult {
	result := &models.LookupResult{
		Kind:   "booth_lookup",
		Params: map[string]string{"booth_number": booth},
	}

	wantID := "booth-" + booth
	for _, p := range collection.Passages() {
		if p.ID == wantID {
			result.Response = p.Content
			result.Confidence = lookupConfidence
			return result
		}
	}

	if locale == "hi" {
		result.Response = fmt.Sprintf("बूथ %s का विवरण लोड किए गए आंकड़ों में नहीं है। कृपया electoralsearch.eci.gov.in पर अपनी EPIC आईडी से खोजें या 1950 पर कॉल करें।", booth)
	} else {
		result.Response = fmt.Sprintf("Booth %s is not in the loaded records. Please search electoralsearch.eci.gov.in with your EPIC ID, or call the 1950 helpline.", booth)
	}
	result.Confidence = 0.6
	return result
}

func registrationStatusResponse(epic, locale string) string {
	// The EPIC is masked in the response; it was user-provided but must not
	// echo back verbatim into logs or transcripts
	masked := epic[:3] + strings.Repeat("X", len(epic)-3)
	if locale == "hi" {
		return fmt.Sprintf("EPIC %s की पंजीकरण स्थिति electoralsearch.eci.gov.in पर देखें या अपना EPIC नंबर 1950 पर SMS करें। नाम सूची में न हो तो अपने निर्वाचक पंजीकरण अधिकारी से संपर्क करें।", masked)
	}
	return fmt.Sprintf("To check the registration status of EPIC %s, search electoralsearch.eci.gov.in or SMS your EPIC number to 1950. If your name is missing, contact your Electoral Registration Officer.", masked)
}

func violationReportResponse(locale string) string {
	if locale == "hi" {
		return "आदर्श आचार संहिता के उल्लंघन की शिकायत cVIGIL मोबाइल ऐप से करें: फोटो या वीडियो संलग्न करें, स्थान स्वतः दर्ज हो जाता है और 100 मिनट के भीतर कार्रवाई होती है। आप 1950 हेल्पलाइन पर भी शिकायत दर्ज कर सकते हैं।"
	}
	return "To report a Model Code of Conduct violation, use the cVIGIL mobile app: attach a photo or video, the location is captured automatically, and action follows within 100 minutes. You can also call the 1950 helpline."
}
