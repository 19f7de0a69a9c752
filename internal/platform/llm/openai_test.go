package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(config.LLMConfig{
		BaseURL:     srv.URL + "/",
		APIKey:      "sk-test",
		Model:       "gpt-test",
		MaxTokens:   1500,
		Temperature: 0.8,
		Timeout:     5 * time.Second,
	}, zap.NewNop().Sugar())
}

func TestComplete_SendsRequestAndReturnsText(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Olá, Ana  "},"finish_reason":"stop"}]}`))
	})

	out, err := c.Complete(context.Background(), Request{System: "sys", Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Olá, Ana", out)

	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, 1500, got.MaxTokens)
	assert.InDelta(t, 0.8, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestComplete_RequestOverrides(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})
	temp := 0.2
	_, err := c.Complete(context.Background(), Request{Prompt: "p", MaxTokens: 300, Temperature: &temp})
	require.NoError(t, err)
	assert.Equal(t, 300, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
	assert.Len(t, got.Messages, 1)
}

func TestComplete_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	})
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestComplete_EmptyCompletion(t *testing.T) {
	for _, body := range []string{`{"choices":[]}`, `{"choices":[{"message":{"content":"   "}}]}`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		_, err := c.Complete(context.Background(), Request{Prompt: "p"})
		require.ErrorIs(t, err, ErrEmptyCompletion, body)
	}
}

func TestComplete_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	c := NewOpenAIClient(config.LLMConfig{BaseURL: url, APIKey: "k", Model: "m"}, zap.NewNop().Sugar())
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
}

func TestComplete_MissingKey(t *testing.T) {
	c := NewOpenAIClient(config.LLMConfig{}, zap.NewNop().Sugar())
	_, err := c.Complete(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
}
