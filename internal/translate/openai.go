package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"viola/internal/domain"
)

// OpenAIProvider implements Provider on an OpenAI-compatible
// chat-completion API. Detection and translation happen in one call.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string
	Model       string  // default "gpt-4o-mini"
	Temperature float32 // default 0.3
	BaseURL     string  // optional, for self-hosted gateways
}

// NewOpenAIProvider creates a new OpenAI-backed provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: temperature,
	}
}

// inferResponse is the JSON body the model is instructed to return.
type inferResponse struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	Reason string `json:"reason,omitempty"`
}

// Infer implements Provider.
func (p *OpenAIProvider) Infer(ctx context.Context, text string, source, target domain.LanguageCode) (*Result, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(source, target)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelFailure, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", domain.ErrModelFailure)
	}

	return parseInferResponse(resp.Choices[0].Message.Content, source)
}

func buildSystemPrompt(source, target domain.LanguageCode) string {
	var b strings.Builder
	b.WriteString("You are a translation engine. Translate the user message into ")
	b.WriteString(target.Name())
	b.WriteString(" (" + string(target) + ").\n")

	if source == domain.Auto {
		b.WriteString("Detect the source language yourself. If you cannot determine it confidently, set \"source\" to \"und\" and \"text\" to an empty string.\n")
	} else {
		b.WriteString("The source language is ")
		b.WriteString(source.Name())
		b.WriteString(" (" + string(source) + ").\n")
	}

	b.WriteString(`Respond with a JSON object only: {"source": "<iso-639-1 code>", "text": "<translation>"}. `)
	b.WriteString(`If you cannot translate between this language pair, set "reason" to "unsupported_pair" and "text" to an empty string. `)
	b.WriteString("Do not add explanations or any other fields.")
	return b.String()
}

// parseInferResponse maps the model's JSON body onto the error taxonomy.
func parseInferResponse(body string, requested domain.LanguageCode) (*Result, error) {
	var parsed inferResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", domain.ErrModelFailure, err)
	}

	if parsed.Reason == "unsupported_pair" {
		return nil, fmt.Errorf("%w: %s -> requested target", domain.ErrUnsupportedPair, parsed.Source)
	}

	detected := domain.LanguageCode(strings.ToLower(strings.TrimSpace(parsed.Source)))
	if requested == domain.Auto {
		if detected == "" || detected == "und" {
			return nil, domain.ErrDetectionFailed
		}
		// A detection outside the supported set is as useless as none:
		// nothing downstream can name, compare or cache it.
		if !domain.IsSupported(detected) {
			return nil, fmt.Errorf("%w: model reported %q", domain.ErrDetectionFailed, detected)
		}
	} else {
		// Trust the caller over the model's echo.
		detected = requested
	}

	if strings.TrimSpace(parsed.Text) == "" {
		return nil, fmt.Errorf("%w: empty translation", domain.ErrModelFailure)
	}

	return &Result{Text: parsed.Text, Source: detected}, nil
}
