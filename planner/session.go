package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

	roleUser  = "user"
	roleModel = "model"
)

// Session is one conversation with the generative model. The reply to each
// prompt depends on the accumulated history, so calls on a session must be
// serialized and sessions must never be shared between concurrent requests.
type Session interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// SessionFactory hands out a fresh primed session per generation request.
type SessionFactory interface {
	NewSession() Session
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	TopK             int     `json:"topK"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiFactory builds sessions against the Gemini generateContent API.
type GeminiFactory struct {
	cfg    Config
	client *http.Client
}

func NewGeminiFactory(cfg Config) *GeminiFactory {
	return &GeminiFactory{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (f *GeminiFactory) NewSession() Session {
	history := make([]geminiContent, 0, len(sessionPrimer)+2)
	for _, m := range sessionPrimer {
		history = append(history, geminiContent{Role: m.Role, Parts: []geminiPart{{Text: m.Text}}})
	}
	return &geminiSession{factory: f, history: history}
}

type geminiSession struct {
	factory *GeminiFactory
	mu      sync.Mutex
	history []geminiContent
}

// Send appends the prompt to the running conversation and returns the
// model's latest reply. A failed call leaves the history untouched, so a
// retry replays the identical conversation.
func (s *geminiSession) Send(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents := append(append([]geminiContent{}, s.history...), geminiContent{
		Role:  roleUser,
		Parts: []geminiPart{{Text: prompt}},
	})

	reply, err := s.factory.generate(ctx, contents)
	if err != nil {
		return "", err
	}

	s.history = append(contents, geminiContent{Role: roleModel, Parts: []geminiPart{{Text: reply}}})
	return reply, nil
}

func (f *GeminiFactory) generate(ctx context.Context, contents []geminiContent) (string, error) {
	payload := geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:      f.cfg.Temperature,
			TopP:             f.cfg.TopP,
			TopK:             f.cfg.TopK,
			MaxOutputTokens:  f.cfg.MaxOutputTokens,
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ModelError{Err: err}
	}

	base := f.cfg.BaseURL
	if base == "" {
		base = geminiEndpoint
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", base, f.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ModelError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", f.cfg.APIKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &ModelError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &ModelError{Status: resp.StatusCode, Err: parseGeminiError(resp)}
	}

	var response geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", &ModelError{Err: err}
	}

	text := extractCandidateText(response)
	if text == "" {
		return "", &ModelError{Err: errors.New("model returned an empty reply")}
	}
	return text, nil
}

func parseGeminiError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Message == "" {
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}
	return errors.New(payload.Error.Message)
}

func extractCandidateText(response geminiResponse) string {
	for _, candidate := range response.Candidates {
		var parts []string
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				parts = append(parts, part.Text)
			}
		}
		if len(parts) > 0 {
			return strings.TrimSpace(strings.Join(parts, "\n"))
		}
	}
	return ""
}
