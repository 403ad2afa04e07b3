package models

// RouteType identifies the terminal branch the router selected for a request
type RouteType string

const (
	RouteRAG              RouteType = "rag"
	RouteVoiceThenRAG     RouteType = "voice_then_rag"
	RouteVision           RouteType = "vision"
	RouteStructuredLookup RouteType = "structured_lookup"
	RouteMultimodal       RouteType = "multimodal"
	RouteEngineDirect     RouteType = "engine_direct"
)

// Modality identifies the input modality detected by the router
type Modality string

const (
	ModalityText      Modality = "text"
	ModalityAudio     Modality = "audio"
	ModalityImage     Modality = "image"
	ModalityTextImage Modality = "text_image"
)

// RouteInput is the top-level request accepted by the modality router
type RouteInput struct {
	Text                string    `json:"text,omitempty"`
	AudioBytes          []byte    `json:"audio_bytes,omitempty"`
	ImageBytes          []byte    `json:"image_bytes,omitempty"`
	Locale              string    `json:"locale"`
	SessionID           string    `json:"session_id"`
	ConversationHistory []Message `json:"conversation_history,omitempty"`
	UserID              string    `json:"user_id,omitempty"`
	Latitude            float64   `json:"latitude,omitempty"`
	Longitude           float64   `json:"longitude,omitempty"`
}

// EngineResult is the response of a deterministic civic engine
type EngineResult struct {
	FormattedResponse string  `json:"formatted_response"`
	Confidence        float64 `json:"confidence"`
}

// LookupResult is the response of the structured, non-generative lookup path
type LookupResult struct {
	Kind       string            `json:"kind"` // booth_lookup, registration_status, violation_report
	Params     map[string]string `json:"params,omitempty"`
	Response   string            `json:"response"`
	Confidence float64           `json:"confidence"`
}

// VisionResult holds text extracted from an image-only request
type VisionResult struct {
	ExtractedText string `json:"extracted_text"`
}

// RouterResult is the dispatcher's outcome. Exactly one of the optional
// sub-results corresponds to Type.
type RouterResult struct {
	Type           RouteType `json:"type"`
	Modality       Modality  `json:"modality"`
	ResolvedQuery  string    `json:"resolved_query"`
	ResolvedLocale string    `json:"resolved_locale"`

	Classification *ClassificationResult `json:"classification,omitempty"`
	Engine         *EngineResult         `json:"engine,omitempty"`
	Lookup         *LookupResult         `json:"lookup,omitempty"`
	RAG            *RAGOutput            `json:"rag,omitempty"`
	Vision         *VisionResult         `json:"vision,omitempty"`

	RequestID      string `json:"request_id"`
	TotalLatencyMs int64  `json:"total_latency_ms"`
}
