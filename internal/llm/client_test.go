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
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func completionBody(text string) []byte {
	resp := map[string]any{
		"model": "qwen2.5-coder:7b",
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": text}},
		},
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestChatClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer ollama", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5-coder:7b", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "system prompt", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "user prompt", req.Messages[1].Content)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		assert.Equal(t, 512, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody(`{"target_language":"Go"}`))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Complete(context.Background(), CompletionRequest{
		Task:         TaskAnalyze,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"target_language":"Go"}`, resp.Text)
	assert.Equal(t, "qwen2.5-coder:7b", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestChatClient_Complete_OmitsSystemMessageWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		// generation stage omits max_tokens only for optimize
		assert.InDelta(t, 0.1, req.Temperature, 1e-9)
		assert.Equal(t, 4096, req.MaxTokens)
		w.Write(completionBody("code"))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskGenerate,
		UserPrompt: "write code",
	})
	require.NoError(t, err)
}

func TestChatClient_Complete_OptimizeUsesBackendDefaultMaxTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, present := raw["max_tokens"]
		assert.False(t, present, "optimize should omit max_tokens")
		assert.InDelta(t, 0.2, raw["temperature"].(float64), 1e-9)
		w.Write(completionBody("optimized"))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskOptimize,
		UserPrompt: "optimize",
	})
	require.NoError(t, err)
}

func TestChatClient_Complete_StripsCodeFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody("```python\nprint('hi')\n```"))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskGenerate,
		UserPrompt: "write code",
	})
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", resp.Text)
}

func TestChatClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskAnalyze: {Temperature: 0.3, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewChatClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskAnalyze,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestChatClient_Complete_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskAnalyze: {Temperature: 0.3, MaxTokens: 512, TimeoutMs: 1000},
	}

	client := NewChatClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskAnalyze,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestChatClient_Complete_RetryOnTransientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		w.Write(completionBody("recovered"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewChatClient(cfg, NoopObserver{})
	resp, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskGenerate,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "recovered", resp.Text)
}

func TestChatClient_Complete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0

	client := NewChatClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskGenerate,
		UserPrompt: "test",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestChatClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))

	down := NewChatClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, down.Available(context.Background()))
}

func TestChatClient_ObserverReceivesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody("ok"))
	}))
	defer srv.Close()

	var events []CallEvent
	obs := observerFunc(func(e CallEvent) { events = append(events, e) })

	client := NewChatClient(testConfig(srv.URL), obs)
	_, err := client.Complete(context.Background(), CompletionRequest{
		Task:       TaskAnalyze,
		UserPrompt: "test",
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, TaskAnalyze, events[0].Task)
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }
