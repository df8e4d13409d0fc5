package planner

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIFactory builds sessions against the OpenAI chat completions API. It
// mirrors the Gemini factory so the provider can be swapped by configuration
// alone; the primer and serialization rules are identical.
type OpenAIFactory struct {
	cfg    Config
	client openai.Client
}

func NewOpenAIFactory(cfg Config) *OpenAIFactory {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIFactory{cfg: cfg, client: openai.NewClient(opts...)}
}

func (f *OpenAIFactory) NewSession() Session {
	history := make([]openai.ChatCompletionMessageParamUnion, 0, len(sessionPrimer)+2)
	for _, m := range sessionPrimer {
		if m.Role == roleModel {
			history = append(history, openai.AssistantMessage(m.Text))
		} else {
			history = append(history, openai.UserMessage(m.Text))
		}
	}
	return &openaiSession{factory: f, history: history}
}

type openaiSession struct {
	factory *OpenAIFactory
	mu      sync.Mutex
	history []openai.ChatCompletionMessageParamUnion
}

func (s *openaiSession) Send(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := append(append([]openai.ChatCompletionMessageParamUnion{}, s.history...), openai.UserMessage(prompt))

	resp, err := s.factory.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(s.factory.cfg.Model),
		Messages:            messages,
		Temperature:         openai.Float(s.factory.cfg.Temperature),
		TopP:                openai.Float(s.factory.cfg.TopP),
		MaxCompletionTokens: openai.Int(int64(s.factory.cfg.MaxOutputTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &ModelError{Status: apiErr.StatusCode, Err: err}
		}
		return "", &ModelError{Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ModelError{Err: errors.New("model returned an empty reply")}
	}

	reply := resp.Choices[0].Message.Content
	s.history = append(messages, openai.AssistantMessage(reply))
	return reply, nil
}
