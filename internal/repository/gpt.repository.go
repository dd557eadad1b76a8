package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rmassistant/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

// GptRepository is the narrative enhancement adapter. Callers must already
// hold the deterministic fallback narrative before invoking it: every
// error, including ErrEnhancementUnavailable, means "use the fallback",
// never "fail the request".
type GptRepository interface {
	EnhanceExplain(ctx context.Context, summary domain.DealSummary) (*domain.Explanation, error)
	EnhanceAnswer(ctx context.Context, question string, summary *domain.DealSummary) (string, error)
}

// ErrEnhancementUnavailable is returned when no API credential was
// configured at startup. It is absorbed by callers and never surfaced.
var ErrEnhancementUnavailable = errors.New("narrative enhancement is not configured")

const explainSystemPrompt = `You are a corporate credit/risk assistant. Do not invent facts not present in the deal data. If information is missing, say what is missing. Respond with a JSON object containing exactly these keys: "executive_summary" (string), "key_risks_explained" (array of strings), "rm_talking_points" (array of strings). Output JSON only, no markdown fences.`

const qaSystemPrompt = `You are a corporate banking RM copilot. Give practical next steps and clarify missing info. Be concise and actionable. Ground every statement in the deal summary provided; if none is provided, say what is needed.`

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
	Model     chatgpt.ChatGPTModel
}

func NewGptRepository(apiKey string, model string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
		Model:     resolveModel(model),
	}, nil
}

// NewDisabledGptRepository returns an adapter whose every call reports
// ErrEnhancementUnavailable. Constructed once at startup when no API key
// is present, so call sites never re-check configuration.
func NewDisabledGptRepository() GptRepository {
	return disabledGptRepositoryHandler{}
}

func resolveModel(model string) chatgpt.ChatGPTModel {
	switch strings.TrimSpace(model) {
	case "gpt-4":
		return chatgpt.GPT4
	default:
		return chatgpt.GPT35Turbo
	}
}

type explainCompletion struct {
	ExecutiveSummary  string   `json:"executive_summary"`
	KeyRisksExplained []string `json:"key_risks_explained"`
	RmTalkingPoints   []string `json:"rm_talking_points"`
}

func (h gptRepositoryHandler) EnhanceExplain(ctx context.Context, summary domain.DealSummary) (*domain.Explanation, error) {
	dealJson, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize deal summary: %w", err)
	}

	prompt := fmt.Sprintf(
		"Explain the deal in RM-friendly terms.\n\n1) Executive summary (2-3 lines)\n2) Key risks explained (bullets)\n3) RM talking points (bullets)\n\nDeal data:\n%s",
		string(dealJson),
	)

	content, err := h.send(ctx, explainSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	completion := explainCompletion{}
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &completion); err != nil {
		return nil, fmt.Errorf("gpt response did not match expected shape: %w", err)
	}
	if completion.ExecutiveSummary == "" {
		return nil, fmt.Errorf("gpt response missing executive summary")
	}

	return &domain.Explanation{
		ExecutiveSummary: completion.ExecutiveSummary,
		KeyRisks:         completion.KeyRisksExplained,
		TalkingPoints:    completion.RmTalkingPoints,
	}, nil
}

func (h gptRepositoryHandler) EnhanceAnswer(ctx context.Context, question string, summary *domain.DealSummary) (string, error) {
	prompt := question
	if summary != nil {
		dealJson, err := json.Marshal(summary)
		if err != nil {
			return "", fmt.Errorf("failed to serialize deal summary: %w", err)
		}
		prompt = fmt.Sprintf("%s\n\nDeal summary:\n%s", question, string(dealJson))
	}

	content, err := h.send(ctx, qaSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("gpt returned an empty answer")
	}

	return content, nil
}

func (h gptRepositoryHandler) send(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	response, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: h.Model,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: userPrompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("gpt request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

type disabledGptRepositoryHandler struct{}

func (h disabledGptRepositoryHandler) EnhanceExplain(ctx context.Context, summary domain.DealSummary) (*domain.Explanation, error) {
	return nil, ErrEnhancementUnavailable
}

func (h disabledGptRepositoryHandler) EnhanceAnswer(ctx context.Context, question string, summary *domain.DealSummary) (string, error) {
	return "", ErrEnhancementUnavailable
}
