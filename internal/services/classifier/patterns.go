package classifier

import (
	"regexp"

	"github.com/janmitra/janmitra/internal/models"
)

type pattern struct {
	re        *regexp.Regexp
	weight    float64
	subIntent string
}

type categoryDef struct {
	category models.Category
	patterns []pattern
}

func p(expr string, weight float64, subIntent string) pattern {
	return pattern{re: regexp.MustCompile(`(?i)` + expr), weight: weight, subIntent: subIntent}
}

// categoryDefs drives deterministic intent classification. Declaration order
// is the tie-break: on an equal score the earlier category wins, so the more
// actionable intents are listed first. Patterns cover English and Hindi
// phrasings of each intent.
var categoryDefs = []categoryDef{
	{
		category: models.CategoryBoothQuery,
		patterns: []pattern{
			p(`\b(polling\s+)?booth\b`, 3, "find_booth"),
			p(`\bpolling\s+(station|centre|center|place)\b`, 3, "find_booth"),
			p(`\bwhere\s+(do|can|should)\s+i\s+vote\b`, 3, "find_booth"),
			p(`मतदान\s*(केंद्र|केन्द्र)`, 3, "find_booth"),
			p(`बूथ`, 3, "find_booth"),
		},
	},
	{
		category: models.CategoryRollLookup,
		patterns: []pattern{
			p(`\belectoral\s+roll\b`, 3, "roll_status"),
			p(`\bvoter\s+list\b`, 3, "roll_status"),
			p(`\b(am\s+i|is\s+my\s+name)\s+(on|in)\s+the\s+(roll|list)\b`, 3, "roll_status"),
			p(`\bepic\b`, 2, "epic_status"),
			p(`मतदाता\s+सूची`, 3, "roll_status"),
		},
	},
	{
		category: models.CategoryFormGuidance,
		patterns: []pattern{
			p(`\bform\s*6\b`, 3, "form_6"),
			p(`\bform\s*8\b`, 3, "form_8"),
			p(`\bform\s*12d?\b`, 3, "form_12"),
			p(`\bregist(er|ration)\b`, 2, "form_6"),
			p(`\b(enroll|enrol)\b`, 2, "form_6"),
			p(`\b(change|correct|update)\s+(my\s+)?(address|name|details)\b`, 2, "form_8"),
			p(`फॉर्म\s*6`, 3, "form_6"),
			p(`पंजीकरण`, 2, "form_6"),
		},
	},
	{
		category: models.CategoryVotingRules,
		patterns: []pattern{
			p(`\b(documents?|id)\s+(do\s+i\s+need|required|accepted)\b`, 3, "documents"),
			p(`\b(evm|vvpat|nota)\b`, 3, "procedure"),
			p(`\bpostal\s+ballot\b`, 3, "postal"),
			p(`\b(proxy|eligib)\w*\b`, 2, "eligibility"),
			p(`\bpolling\s+hours?\b`, 2, "hours"),
			p(`\bhow\s+(do|to)\s+.{0,20}\bvote\b`, 2, "procedure"),
			p(`दस्तावेज़`, 3, "documents"),
			p(`कैसे\s+वोट`, 2, "procedure"),
		},
	},
	{
		category: models.CategoryComplaint,
		patterns: []pattern{
			p(`\bcomplain(t|ts)?\b`, 3, "file_complaint"),
			p(`\breport\s+(a\s+)?(violation|bribe|fraud|irregularit)`, 3, "report_violation"),
			p(`\bcvigil\b`, 3, "report_violation"),
			p(`\b(cash|money|liquor)\s+(distribut|being\s+given)`, 3, "report_violation"),
			p(`\bcode\s+of\s+conduct\b`, 2, "report_violation"),
			p(`शिकायत`, 3, "file_complaint"),
			p(`उल्लंघन`, 3, "report_violation"),
		},
	},
	{
		category: models.CategoryTimeline,
		patterns: []pattern{
			p(`\bwhen\s+(is|are)\s+.{0,30}\b(election|polling|voting|counting|result)`, 3, "schedule"),
			p(`\b(election|polling|counting)\s+(date|day|schedule)\b`, 3, "schedule"),
			p(`\b(nomination|withdrawal)\s+(date|deadline|period)\b`, 3, "nominations"),
			p(`\blast\s+date\b`, 2, "deadline"),
			p(`\bsilence\s+period\b`, 2, "schedule"),
			p(`चुनाव\s+कब`, 3, "schedule"),
			p(`तारीख`, 2, "schedule"),
		},
	},
	{
		category: models.CategoryGeneralFAQ,
		patterns: []pattern{
			p(`\b(what|who|why|how)\s+(is|are|does)\b`, 1, ""),
			p(`\b(election\s+commission|eci|returning\s+officer|blo)\b`, 2, ""),
			p(`\bhelpline\b`, 2, ""),
			p(`क्या\s+है`, 1, ""),
		},
	},
	{
		category: models.CategoryOutOfScope,
		patterns: []pattern{
			// Heavy weight so a persuasion attempt dominates any civic keywords
			// riding along in the same query
			p(`\b(who|which\s+(party|candidate))\s+(should|do)\s+i\s+vote\s+for\b`, 12, "persuasion"),
			p(`\b(best|worst)\s+(party|candidate|government)\b`, 12, "opinion"),
			p(`\b(predict|who\s+will\s+win)\b`, 12, "prediction"),
			p(`\bis\s+.{0,30}\b(party|candidate|government)\s+(good|bad|corrupt)\b`, 12, "opinion"),
			p(`किसे\s+वोट\s+(दूं|दूँ|देना\s+चाहिए)`, 12, "persuasion"),
			p(`कौन\s+जीतेगा`, 12, "prediction"),
		},
	},
}

// Structured parameter extraction, independent of category
var (
	epicPattern  = regexp.MustCompile(`\b[A-Z]{3}[0-9]{7}\b`)
	pinPattern   = regexp.MustCompile(`\b[1-9][0-9]{5}\b`)
	boothPattern = regexp.MustCompile(`(?i)booth\s+(?:number\s+|no\.?\s*)?([0-9]{1,4})\b`)
)
