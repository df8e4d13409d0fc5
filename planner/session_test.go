package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeminiConfig(baseURL string) Config {
	return Config{
		Provider:        ProviderGemini,
		Model:           "gemini-1.5-flash",
		APIKey:          "test-key",
		BaseURL:         baseURL,
		MaxDays:         DefaultMaxDays,
		Temperature:     1,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
		RequestTimeout:  5 * time.Second,
		RetryBackoff:    time.Millisecond,
	}
}

func geminiReply(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"role":  roleModel,
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(body)
}

func TestGeminiSession_SendCarriesPrimerAndConfig(t *testing.T) {
	var got geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiReply(primerReply)))
	}))
	defer server.Close()

	session := NewGeminiFactory(testGeminiConfig(server.URL)).NewSession()

	reply, err := session.Send(context.Background(), "plan me a trip")
	require.NoError(t, err)
	assert.Equal(t, primerReply, reply)

	require.Len(t, got.Contents, len(sessionPrimer)+1, "primer turns plus the new prompt")
	assert.Equal(t, roleUser, got.Contents[0].Role)
	assert.Equal(t, primerPrompt, got.Contents[0].Parts[0].Text)
	assert.Equal(t, roleModel, got.Contents[1].Role)
	assert.Equal(t, "plan me a trip", got.Contents[len(got.Contents)-1].Parts[0].Text)

	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	assert.Equal(t, 40, got.GenerationConfig.TopK)
	assert.InDelta(t, 0.95, got.GenerationConfig.TopP, 1e-9)
	assert.Equal(t, 8192, got.GenerationConfig.MaxOutputTokens)
}

func TestGeminiSession_HistoryAccumulates(t *testing.T) {
	var lengths []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lengths = append(lengths, len(req.Contents))
		w.Write([]byte(geminiReply("ok")))
	}))
	defer server.Close()

	session := NewGeminiFactory(testGeminiConfig(server.URL)).NewSession()

	_, err := session.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = session.Send(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, lengths, 2)
	assert.Equal(t, len(sessionPrimer)+1, lengths[0])
	assert.Equal(t, len(sessionPrimer)+3, lengths[1], "second call replays the first exchange")
}

func TestGeminiSession_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	session := NewGeminiFactory(testGeminiConfig(server.URL)).NewSession()

	_, err := session.Send(context.Background(), "prompt")
	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, http.StatusTooManyRequests, modelErr.Status)
	assert.Contains(t, modelErr.Error(), "quota exceeded")
}

func TestGeminiSession_FailedCallLeavesHistoryUntouched(t *testing.T) {
	calls := 0
	var lastLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lastLen = len(req.Contents)
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(geminiReply("ok")))
	}))
	defer server.Close()

	session := NewGeminiFactory(testGeminiConfig(server.URL)).NewSession()

	_, err := session.Send(context.Background(), "prompt")
	require.Error(t, err)

	_, err = session.Send(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, len(sessionPrimer)+1, lastLen, "retry replays the identical conversation")
}

func TestGeminiSession_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	session := NewGeminiFactory(testGeminiConfig(server.URL)).NewSession()

	_, err := session.Send(context.Background(), "prompt")
	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, 0, modelErr.Status)
}

func TestGeminiFactory_SessionsAreIndependent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply("ok")))
	}))
	defer server.Close()

	factory := NewGeminiFactory(testGeminiConfig(server.URL))
	first := factory.NewSession().(*geminiSession)
	second := factory.NewSession().(*geminiSession)

	_, err := first.Send(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Len(t, second.history, len(sessionPrimer), "a fresh session must not see another session's exchanges")
	assert.Len(t, first.history, len(sessionPrimer)+2)
}
