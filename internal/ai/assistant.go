package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/models"
)

// ActionChip is a quick action the client can render below an
// assistant reply.
type ActionChip struct {
	Label string                 `json:"label"`
	Type  string                 `json:"type"`
	Data  map[string]interface{} `json:"data"`
}

// ChatReply is a structured assistant response.
type ChatReply struct {
	Response          string       `json:"response"`
	FollowUpQuestions []string     `json:"follow_up_questions"`
	ActionChips       []ActionChip `json:"action_chips"`
}

// Assistant answers free-form tax questions with the user's document
// context injected into the prompt. Like the extractor, it degrades to
// a canned reply when the model is unavailable.
type Assistant struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewAssistant creates an assistant. An empty apiKey disables the model.
func NewAssistant(apiKey, model string, temperature float32, maxTokens int, logger *zap.Logger) *Assistant {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &Assistant{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

const (
	maxContextDocuments = 5
	maxFollowUps        = 4
	maxActionChips      = 4
)

var defaultFollowUps = []string{
	"What documents do I need to file my ITR?",
	"What are the tax deduction options available?",
	"When is the ITR filing deadline?",
}

// BuildContext summarizes the user's documents and profile for the
// prompt. Only the most recent documents and the first few metadata
// fields of each are included.
func BuildContext(documents []*models.DocumentRecord, profile *models.UserProfile) string {
	var b strings.Builder

	if len(documents) > 0 {
		b.WriteString("User's Documents:\n")
		count := len(documents)
		if count > maxContextDocuments {
			count = maxContextDocuments
		}
		for _, doc := range documents[:count] {
			fields := make([]string, 0, 3)
			for key, value := range doc.Meta() {
				fields = append(fields, fmt.Sprintf("%s=%v", key, value))
				if len(fields) == 3 {
					break
				}
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", doc.DocumentType, strings.Join(fields, ", ")))
		}
	}

	if profile != nil && profile.Name != "" {
		b.WriteString(fmt.Sprintf("\nUser Profile: %s (PAN: %s)\n", profile.Name, profile.PAN))
	}

	return b.String()
}

// Respond answers one user message. It never returns an error; every
// failure path yields the degraded reply so the chat surface stays up.
func (a *Assistant) Respond(ctx context.Context, message, contextInfo string) *ChatReply {
	if a.client == nil {
		return a.degradedReply("I'm sorry, but the AI assistant is currently unavailable. Please try again later or contact support.")
	}

	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a helpful tax assistant for an Indian tax filing application. Always respond with a single valid JSON object.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: a.buildPrompt(message, contextInfo),
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		a.logger.Warn("Assistant call failed", zap.Error(err))
		return a.degradedReply("I'm sorry, but I'm having trouble connecting to the AI service. Please try again later.")
	}
	if len(resp.Choices) == 0 {
		return a.degradedReply("I'm sorry, but the AI assistant returned an empty response. Please try again.")
	}

	content := resp.Choices[0].Message.Content
	var reply ChatReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		jsonStr := extractJSON(content)
		if jsonStr == "" || json.Unmarshal([]byte(jsonStr), &reply) != nil {
			// Unstructured output still reaches the user as plain text.
			reply = ChatReply{Response: content}
		}
	}

	if reply.FollowUpQuestions == nil {
		reply.FollowUpQuestions = defaultFollowUps
	}
	if len(reply.FollowUpQuestions) > maxFollowUps {
		reply.FollowUpQuestions = reply.FollowUpQuestions[:maxFollowUps]
	}
	if reply.ActionChips == nil {
		reply.ActionChips = []ActionChip{}
	}
	if len(reply.ActionChips) > maxActionChips {
		reply.ActionChips = reply.ActionChips[:maxActionChips]
	}

	return &reply
}

func (a *Assistant) degradedReply(message string) *ChatReply {
	return &ChatReply{
		Response:          message,
		FollowUpQuestions: defaultFollowUps,
		ActionChips:       []ActionChip{},
	}
}

func (a *Assistant) buildPrompt(message, contextInfo string) string {
	return fmt.Sprintf(`The user is asking about tax-related questions.

Context Information:
%s

User Question: %s

Provide a helpful, accurate, and concise response. Focus on:
1. Direct answers to the user's question
2. Relevant tax information for India
3. Practical advice when applicable
4. Clear explanations without unnecessary jargon

After your response, suggest 2-4 relevant follow-up questions and 2-4 action chips.

Format your response as JSON:
{
  "response": "your main response text",
  "follow_up_questions": ["question 1", "question 2"],
  "action_chips": [{"label": "Action name", "type": "action_type", "data": {}}]
}

Action types can be: view_deadlines, upload_document, calculate_tax, view_summary, chat.
Only include actions relevant to the conversation.`, contextInfo, message)
}
