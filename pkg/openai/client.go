package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BenHowl/ReceiptChef/domain"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModels is the fallback list, most capable first.
var DefaultModels = []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"}

type (
	Config struct {
		APIKey     string
		BaseURL    string
		Models     []string
		HTTPClient *http.Client
	}

	// Client is the process-lifetime chat completions handle. It is
	// constructed once at startup and shared read-only afterwards.
	Client struct {
		apiKey     string
		baseURL    string
		models     []string
		httpClient *http.Client
	}

	Message struct {
		Role    string `json:"role"`
		Content any    `json:"content"` // string or []ContentPart
	}

	ContentPart struct {
		Type     string    `json:"type"`
		Text     string    `json:"text,omitempty"`
		ImageURL *ImageURL `json:"image_url,omitempty"`
	}

	ImageURL struct {
		URL string `json:"url"`
	}

	ResponseFormat struct {
		Type string `json:"type"`
	}

	ChatRequest struct {
		Model          string          `json:"model"`
		Messages       []Message       `json:"messages"`
		MaxTokens      int             `json:"max_tokens,omitempty"`
		ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	}

	ChatResponse struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	// APIError is a non-2xx answer from the completions endpoint, with the
	// upstream error object flattened in.
	APIError struct {
		Status  int
		Code    string
		Message string
	}
)

func (e *APIError) Error() string {
	return fmt.Sprintf("openai API error: status %d code %q: %s", e.Status, e.Code, e.Message)
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrOpenAIKeyNotConfigured
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	models := cfg.Models
	if len(models) == 0 {
		models = DefaultModels
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		models:     models,
		httpClient: httpClient,
	}, nil
}

func (c *Client) Models() []string {
	return c.models
}

func (c *Client) CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return ChatResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewBuffer(requestJSON),
	)
	if err != nil {
		return ChatResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatResponse{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return ChatResponse{}, parseAPIError(resp.StatusCode, bodyBytes)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return ChatResponse{}, err
	}

	return chatResp, nil
}

// Content returns the text of the first choice, empty when the model
// produced nothing.
func (r ChatResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

func parseAPIError(status int, body []byte) *APIError {
	var wire struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	apiErr := &APIError{Status: status, Message: string(body)}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error.Message != "" {
		apiErr.Message = wire.Error.Message
		apiErr.Code = wire.Error.Code
	}
	return apiErr
}
