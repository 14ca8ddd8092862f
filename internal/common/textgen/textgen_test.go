package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-demo-generator/internal/common/config"
)

func chatServer(t *testing.T, status int, body string, seen *map[string]interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIService_Complete(t *testing.T) {
	var seen map[string]interface{}
	server := chatServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-4o",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  AI Receptionist: Hi!\nCustomer: Hello.  "}, "finish_reason": "stop"}]
	}`, &seen)

	svc := NewOpenAI("sk-test", server.URL+"/v1")
	text, err := svc.Complete(context.Background(), CompletionRequest{
		System:      "be natural",
		Prompt:      "write a call",
		Model:       "gpt-4o",
		Temperature: 0.8,
		MaxTokens:   900,
	})
	require.NoError(t, err)
	assert.Equal(t, "AI Receptionist: Hi!\nCustomer: Hello.", text)

	assert.Equal(t, "gpt-4o", seen["model"])
	assert.EqualValues(t, 900, seen["max_tokens"])
	messages := seen["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "write a call", messages[1].(map[string]interface{})["content"])
}

func TestOpenAIService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error": {"message": "overloaded", "type": "server_error"}}`,
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"id": "x", "object": "chat.completion", "choices": []}`,
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "blank content",
			status:  http.StatusOK,
			body:    `{"id": "x", "choices": [{"index": 0, "message": {"role": "assistant", "content": "   "}}]}`,
			wantErr: ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := chatServer(t, tt.status, tt.body, nil)
			svc := NewOpenAI("sk-test", server.URL+"/v1")

			_, err := svc.Complete(context.Background(), CompletionRequest{Prompt: "p", Model: "gpt-4o", MaxTokens: 10})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTextFromResponse(t *testing.T) {
	_, err := textFromResponse(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = textFromResponse(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	text, err := textFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("AI Receptionist: Hello.\n"),
				genai.Text("Customer: Hi."),
			}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AI Receptionist: Hello.\nCustomer: Hi.", text)
}

func TestNew(t *testing.T) {
	svc, closer, err := New(context.Background(), config.TextGenerationConfig{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", svc.Name())
	assert.NoError(t, closer())

	_, _, err = New(context.Background(), config.TextGenerationConfig{Provider: "gemini"})
	assert.Error(t, err)

	_, _, err = New(context.Background(), config.TextGenerationConfig{Provider: "llama"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
