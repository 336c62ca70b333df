package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-3.5-turbo"

	completionPath = "/v1/chat/completions"
	maxTokens      = 300
	temperature    = 0.7
)

// CalcContext is the optional calculation snapshot carried with a query.
// Every call is independent: continuity only exists if the caller sends the
// snapshot again.
type CalcContext struct {
	StockPrice    float64
	DesiredProfit float64
	Investment    float64
}

// Client relays single-shot questions to the OpenAI chat-completions API
// with a fixed system prompt. No streaming, no conversation memory.
type Client struct {
	apiKey string
	model  string
	url    string
	http   *http.Client
}

// NewClient builds a relay client. model and baseURL fall back to defaults
// when empty; an empty apiKey makes every Ask fail with ErrNotConfigured.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey: apiKey,
		model:  model,
		url:    strings.TrimRight(baseURL, "/") + completionPath,
		http:   &http.Client{},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Ask forwards query to the completion service and returns the text answer.
// A blank query fails with ErrEmptyQuery before any upstream call is made.
func (c *Client) Ask(ctx context.Context, query string, calc *CalcContext) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt(calc)},
			{Role: "user", Content: query},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encoding request", ErrUpstream)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: building request", ErrUpstream)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: completion service unreachable", ErrNotConfigured)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: credential rejected", ErrNotConfigured)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response", ErrUpstream)
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrUpstream)
	}

	return out.Choices[0].Message.Content, nil
}

// systemPrompt renders the fixed assistant instructions, interpolating the
// calculation snapshot when present.
func systemPrompt(calc *CalcContext) string {
	context := "No current calculation available."
	if calc != nil {
		context = fmt.Sprintf(
			"Current calculation context: Stock price is $%g, desired profit per 1¢ gain is $%g, and the required investment is $%.2f.",
			calc.StockPrice, calc.DesiredProfit, calc.Investment,
		)
	}

	return fmt.Sprintf(`You are an investment calculator assistant. Help users understand their investment calculations and provide financial insights. Be helpful, accurate, and concise.

%s

Key information about the calculator:
- Formula: Investment = Stock Price × (Desired Profit ÷ 0.01)
- The calculator determines how much to invest to earn a specific profit per 1-cent stock price increase
- Users can choose to earn $1, $10, or $100 per 1-cent gain

Answer the user's question clearly and provide relevant financial insights when appropriate.`, context)
}
