package ai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
	"github.com/taxpilot/tax-assistant/internal/tax"
)

// Extractor pulls structured metadata out of document text using an
// OpenAI chat model. Without an API key, or whenever the model call or
// its response fails, it degrades to the rule-based fallback instead
// of surfacing an error.
type Extractor struct {
	client      *openai.Client
	catalog     tax.DocumentCatalog
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewExtractor creates an extractor. An empty apiKey disables the
// model entirely.
func NewExtractor(apiKey, model string, temperature float32, maxTokens int, catalog tax.DocumentCatalog, logger *zap.Logger) *Extractor {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &Extractor{
		client:      client,
		catalog:     catalog,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

const maxDocumentText = 5000

// Extract analyzes document text and merges the findings with the
// user-provided metadata. It never returns an error: every failure
// path falls back to the user metadata at reduced confidence.
func (e *Extractor) Extract(ctx context.Context, documentType, text string, userMetadata map[string]interface{}) *models.ExtractionResult {
	if e.client == nil {
		e.logger.Warn("AI extraction disabled, using fallback", zap.String("document_type", documentType))
		return e.Fallback(documentType, userMetadata)
	}

	if len(text) > maxDocumentText {
		text = text[:maxDocumentText]
	}

	req := openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a tax document processing expert for Indian income tax filings. Always respond with a single valid JSON object.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: e.buildPrompt(documentType, text, userMetadata),
			},
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		e.logger.Warn("AI extraction call failed, using fallback",
			zap.String("document_type", documentType),
			zap.Error(err))
		return e.Fallback(documentType, userMetadata)
	}
	if len(resp.Choices) == 0 {
		e.logger.Warn("AI extraction returned no choices, using fallback")
		return e.Fallback(documentType, userMetadata)
	}

	content := resp.Choices[0].Message.Content
	var result models.ExtractionResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		jsonStr := extractJSON(content)
		if jsonStr == "" || json.Unmarshal([]byte(jsonStr), &result) != nil {
			e.logger.Warn("Failed to parse AI extraction response, using fallback",
				zap.String("document_type", documentType))
			return e.Fallback(documentType, userMetadata)
		}
	}

	if result.ExtractedMetadata == nil {
		result.ExtractedMetadata = map[string]interface{}{}
	}
	// User-provided values win when the model omitted a field.
	for key, value := range userMetadata {
		if _, ok := result.ExtractedMetadata[key]; !ok {
			result.ExtractedMetadata[key] = value
		}
	}

	e.logger.Info("AI extraction completed",
		zap.String("document_type", documentType),
		zap.Float64("confidence", result.ConfidenceScore))
	return &result
}

// Fallback copies the user metadata and validates required fields
// against the document catalog.
func (e *Extractor) Fallback(documentType string, userMetadata map[string]interface{}) *models.ExtractionResult {
	metadata := map[string]interface{}{}
	for key, value := range userMetadata {
		metadata[key] = value
	}

	validationErrors := []string{}
	if entry, ok := e.catalog.Lookup(documentType); ok {
		for _, field := range entry.RequiredFields {
			if value, present := metadata[field]; !present || value == nil || value == "" {
				validationErrors = append(validationErrors, fmt.Sprintf("Missing required field: %s", field))
			}
		}
	}

	return &models.ExtractionResult{
		ExtractedMetadata: metadata,
		ConfidenceScore:   0.5,
		ValidationErrors:  validationErrors,
		Suggestions:       []string{"AI extraction unavailable. Using provided metadata only."},
	}
}

func (e *Extractor) buildPrompt(documentType, text string, userMetadata map[string]interface{}) string {
	userJSON, _ := json.MarshalIndent(userMetadata, "", "  ")

	var required, optional []string
	if entry, ok := e.catalog.Lookup(documentType); ok {
		required = entry.RequiredFields
		optional = entry.OptionalFields
	}

	return fmt.Sprintf(`Analyze the following document text and extract relevant information for a %s document.

Document Type: %s
User Provided Metadata: %s

Document Text:
%s

Required fields for %s: %v
Optional fields for %s: %v

Return a JSON object with this structure:
{
  "extracted_metadata": {},
  "confidence_score": 0.95,
  "validation_errors": [],
  "suggestions": []
}

Guidelines:
1. Extract dates in YYYY-MM-DD format where possible
2. Extract amounts as numbers only (no currency symbols)
3. Standardize month names to full names (January, February, etc.)
4. For financial years, use format "YYYY-YY" (e.g., "2023-24")
5. Validate PAN numbers (10 characters, alphanumeric)
6. Ensure all required fields are present`,
		documentType, documentType, userJSON, text,
		documentType, required, documentType, optional)
}
