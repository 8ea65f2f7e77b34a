package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.ErrorIs(t, err, domain.ErrOpenAIKeyNotConfigured)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModels, client.Models())
}

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatRequest{
		Model:    "gpt-4o",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content())
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"The model 'nope' does not exist","type":"invalid_request_error","code":"model_not_found"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatRequest{Model: "nope"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "model_not_found", apiErr.Code)
	assert.Equal(t, KindModelUnavailable, Classify(err))
}

func TestContentEmptyChoices(t *testing.T) {
	assert.Equal(t, "", ChatResponse{}.Content())
}
