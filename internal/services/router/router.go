package router

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/interfaces"
	"github.com/janmitra/janmitra/internal/models"
	"github.com/janmitra/janmitra/internal/resilience"
	"github.com/janmitra/janmitra/internal/services/kb"
)

// substantiveRunes is the minimum accompanying-text length for an image
// request to count as multimodal rather than image-only.
const substantiveRunes = 10

// Service is the top-level dispatcher. Modality decides the branch first:
// audio is transcribed and re-routed, an image with substantive text goes
// multimodal, a bare image goes to vision extraction. Text then dispatches to
// the deterministic engine, a structured lookup, or the retrieval pipeline.
type Service struct {
	provider     interfaces.InferenceService
	res          *resilience.Client
	classifier   interfaces.ClassifierService
	engine       interfaces.EngineService
	orchestrator interfaces.RAGOrchestrator
	collection   *kb.Collection
	cfg          *common.Config
	logger       arbor.ILogger
}

// NewService creates the router
func NewService(
	provider interfaces.InferenceService,
	res *resilience.Client,
	classifier interfaces.ClassifierService,
	engine interfaces.EngineService,
	orchestrator interfaces.RAGOrchestrator,
	collection *kb.Collection,
	cfg *common.Config,
	logger arbor.ILogger,
) *Service {
	return &Service{
		provider:     provider,
		res:          res,
		classifier:   classifier,
		engine:       engine,
		orchestrator: orchestrator,
		collection:   collection,
		cfg:          cfg,
		logger:       logger,
	}
}

// RouteInput dispatches a request to its terminal branch
func (s *Service) RouteInput(ctx context.Context, input *models.RouteInput) (*models.RouterResult, error) {
	start := time.Now()
	locale := input.Locale
	if locale == "" {
		locale = "en"
	}

	result := &models.RouterResult{
		RequestID:      common.NewRequestID(),
		ResolvedLocale: locale,
	}

	var err error
	switch {
	case len(input.AudioBytes) > 0:
		err = s.routeAudio(ctx, result, input, locale)
	case len(input.ImageBytes) > 0 && substantive(input.Text):
		err = s.routeMultimodal(ctx, result, input, locale)
	case len(input.ImageBytes) > 0:
		err = s.routeVision(ctx, result, input, locale)
	case strings.TrimSpace(input.Text) != "":
		result.Modality = models.ModalityText
		err = s.dispatchText(ctx, result, input, input.Text, locale)
	default:
		return nil, fmt.Errorf("request carries no text, audio or image")
	}
	if err != nil {
		return nil, err
	}

	result.TotalLatencyMs = time.Since(start).Milliseconds()
	s.logger.Info().
		Str("request_id", result.RequestID).
		Str("modality", string(result.Modality)).
		Str("route", string(result.Type)).
		Int64("latency_ms", result.TotalLatencyMs).
		Msg("Request routed")

	return result, nil
}

// routeAudio transcribes and re-routes the transcript as text
func (s *Service) routeAudio(ctx context.Context, result *models.RouterResult, input *models.RouteInput, locale string) error {
	result.Modality = models.ModalityAudio

	transcript, err := resilience.Do(ctx, s.res, "transcription", func(ctx context.Context) (string, error) {
		return s.provider.Transcribe(ctx, input.AudioBytes, locale)
	})
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return fmt.Errorf("transcription produced no text")
	}

	if err := s.dispatchText(ctx, result, input, transcript, locale); err != nil {
		return err
	}
	// A transcript that reached the retrieval pipeline is the voice route
	if result.Type == models.RouteRAG {
		result.Type = models.RouteVoiceThenRAG
	}
	return nil
}

// routeMultimodal merges image-extracted text into the query before the text
// dispatch.
func (s *Service) routeMultimodal(ctx context.Context, result *models.RouterResult, input *models.RouteInput, locale string) error {
	result.Modality = models.ModalityTextImage

	extracted, err := s.describeImage(ctx, input.ImageBytes)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Image extraction failed, answering from text alone")
		extracted = ""
	}

	query := input.Text
	if extracted != "" {
		query = input.Text + "\n\nText from the attached image:\n" + extracted
	}

	if err := s.dispatchText(ctx, result, input, query, locale); err != nil {
		return err
	}
	// Engine and lookup answers keep their route type; only the retrieval
	// path is relabelled as multimodal
	if result.Type == models.RouteRAG {
		result.Type = models.RouteMultimodal
	}
	result.ResolvedQuery = query
	return nil
}

// routeVision extracts text from an image-only request and answers about it
func (s *Service) routeVision(ctx context.Context, result *models.RouterResult, input *models.RouteInput, locale string) error {
	result.Modality = models.ModalityImage
	result.Type = models.RouteVision

	extracted, err := s.describeImage(ctx, input.ImageBytes)
	if err != nil {
		return fmt.Errorf("vision extraction failed: %w", err)
	}
	result.Vision = &models.VisionResult{ExtractedText: extracted}
	result.ResolvedQuery = extracted

	if strings.TrimSpace(extracted) == "" {
		return nil
	}

	rag, err := s.orchestrator.Orchestrate(ctx, &models.RAGInput{
		Query:               "Explain this document to the voter: " + extracted,
		Locale:              locale,
		ConversationHistory: input.ConversationHistory,
		UserID:              input.UserID,
	})
	if err != nil {
		return err
	}
	result.RAG = rag
	return nil
}

func (s *Service) describeImage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("no image bytes")
	}
	return resilience.Do(ctx, s.res, "vision", func(ctx context.Context) (string, error) {
		return s.provider.Describe(ctx, image, "Extract all text from this election-related document or notice. Reply with the text only.")
	})
}

// dispatchText routes a text query: confident classified intents go to the
// deterministic engine, exact-identifier queries to the structured lookup,
// everything else to the retrieval pipeline.
func (s *Service) dispatchText(ctx context.Context, result *models.RouterResult, input *models.RouteInput, query, locale string) error {
	classification := s.classifier.Classify(query)
	result.Classification = classification
	result.ResolvedQuery = query

	category := classification.Category
	engineEligible := classification.Confidence >= s.cfg.Router.EngineMinConfidence &&
		category != models.CategoryGeneralFAQ &&
		category != models.CategoryRollLookup

	if engineEligible {
		if engine, ok := s.engine.Respond(ctx, category, classification.SubIntent, query, locale); ok {
			result.Type = models.RouteEngineDirect
			result.Engine = engine
			return nil
		}
	}

	if lookup := structuredLookup(s.collection, query, locale); lookup != nil {
		result.Type = models.RouteStructuredLookup
		result.Lookup = lookup
		return nil
	}

	rag, err := s.orchestrator.Orchestrate(ctx, &models.RAGInput{
		Query:               query,
		Locale:              locale,
		ConversationHistory: input.ConversationHistory,
		UserID:              input.UserID,
	})
	if err != nil {
		return err
	}
	result.Type = models.RouteRAG
	result.RAG = rag
	return nil
}

func substantive(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= substantiveRunes
}

// Ensure Service implements the router interface
var _ interfaces.RouterService = (*Service)(nil)
