package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 300
)

// Client defines the AI tutor elaboration used by the coaching layer.
type Client interface {
	Elaborate(ctx context.Context, title, message string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

// Message is one turn of an Anthropic conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You are a friendly farming tutor inside an educational farming game for students.
You will receive a short coaching hint (title and message). Rewrite it as 2-3 encouraging sentences
that explain the underlying agricultural concept in plain language. Do not add markdown, lists or emojis.`

// Elaborate expands a short coaching hint into a longer tutor message.
func (c *anthropicClient) Elaborate(ctx context.Context, title, message string) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []Message{
			{Role: "user", Content: fmt.Sprintf("Hint title: %s\nHint message: %s", title, message)},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal anthropic request: %w", err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(apiURL)
	if err != nil {
		return "", fmt.Errorf("call anthropic api: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return "", fmt.Errorf("anthropic api error: code=%d, body=%s", resp.StatusCode(), resp.String())
	}

	var parsed messageResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}

	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("anthropic response contained no content")
	}

	return strings.TrimSpace(parsed.Content[0].Text), nil
}
