package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/models"
)

func newService() *Service {
	return NewService(arbor.NewLogger())
}

func TestClassify_Categories(t *testing.T) {
	tests := []struct {
		query    string
		category models.Category
	}{
		{"Where is my polling booth?", models.CategoryBoothQuery},
		{"Is my name on the electoral roll?", models.CategoryRollLookup},
		{"How do I fill Form 6?", models.CategoryFormGuidance},
		{"What documents do I need at the booth on polling day and how do I vote on the EVM?", models.CategoryVotingRules},
		{"I want to file a complaint about cash distribution", models.CategoryComplaint},
		{"When is the election date announced?", models.CategoryTimeline},
		{"What is the Election Commission?", models.CategoryGeneralFAQ},
		{"Which party should I vote for?", models.CategoryOutOfScope},
	}

	svc := newService()
	for _, tt := range tests {
		result := svc.Classify(tt.query)
		assert.Equal(t, tt.category, result.Category, "query: %s", tt.query)
	}
}

func TestClassify_Hindi(t *testing.T) {
	svc := newService()

	assert.Equal(t, models.CategoryBoothQuery, svc.Classify("मेरा मतदान केंद्र कहाँ है?").Category)
	assert.Equal(t, models.CategoryComplaint, svc.Classify("मुझे शिकायत दर्ज करनी है").Category)
	assert.Equal(t, models.CategoryOutOfScope, svc.Classify("मुझे किसे वोट देना चाहिए?").Category)
}

func TestClassify_OutOfScopeDominatesCivicKeywords(t *testing.T) {
	svc := newService()

	// Persuasion wrapped in a legitimate-sounding booth question
	result := svc.Classify("At my polling booth, which party should I vote for?")
	assert.Equal(t, models.CategoryOutOfScope, result.Category)
	assert.GreaterOrEqual(t, result.Confidence, 0.85, "out-of-scope confidence is floored")
}

func TestClassify_UnmatchedQuery(t *testing.T) {
	svc := newService()

	result := svc.Classify("xyzzy plugh")
	assert.Equal(t, models.CategoryGeneralFAQ, result.Category)
	assert.Equal(t, 0.3, result.Confidence)
}

func TestClassify_TieBreakFirstDeclared(t *testing.T) {
	svc := newService()

	// "booth" (booth_query, weight 3) and "electoral roll" (roll_lookup,
	// weight 3) tie; booth_query is declared first
	result := svc.Classify("booth electoral roll")
	assert.Equal(t, models.CategoryBoothQuery, result.Category)
}

func TestClassify_SubIntent(t *testing.T) {
	svc := newService()

	assert.Equal(t, "form_6", svc.Classify("How do I fill Form 6?").SubIntent)
	assert.Equal(t, "find_booth", svc.Classify("Where is my polling booth?").SubIntent)
}

func TestClassify_ConfidenceIsShareOfTotal(t *testing.T) {
	svc := newService()

	// A pure booth query should concentrate nearly all matched weight
	result := svc.Classify("booth")
	assert.Greater(t, result.Confidence, 0.5)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestExtractParams(t *testing.T) {
	svc := newService()

	result := svc.Classify("My EPIC is abc1234567, PIN 110078, booth 42")
	assert.Equal(t, "ABC1234567", result.ExtractedParams["epic_number"])
	assert.Equal(t, "110078", result.ExtractedParams["pincode"])
	assert.Equal(t, "42", result.ExtractedParams["booth_number"])
}

func TestExtractParams_NoneIsNil(t *testing.T) {
	svc := newService()

	result := svc.Classify("Where is my polling booth?")
	assert.Nil(t, result.ExtractedParams)
}
