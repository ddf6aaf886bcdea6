package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"arenadb/pkg/models"
)

// ErrUpstream marks a non-2xx or network failure from a provider endpoint.
var ErrUpstream = errors.New("upstream provider failure")

// Client issues OpenAI-style chat-completion calls against a gateway origin,
// forwarding a restricted set of authorization headers with each call.
type Client struct {
	Origin  string
	Headers http.Header

	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

// ChatRequest is the OpenAI-compatible completion request body.
type ChatRequest struct {
	Model       string           `json:"model"`
	Messages    []models.Message `json:"messages"`
	Temperature *float64         `json:"temperature,omitempty"`
	Stream      bool             `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Complete posts a chat-completion request for the named provider and
// returns the assistant text of the first choice. Both the completion-style
// `message.content` and legacy `text` response shapes are accepted.
func (c *Client) Complete(ctx context.Context, providerName string, req ChatRequest) (string, error) {
	if c.Origin == "" {
		return "", fmt.Errorf("%w: no gateway origin configured", ErrUpstream)
	}
	endpoint := strings.TrimRight(c.Origin, "/") + CompletionPath(providerName)

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	for k, vs := range c.Headers {
		for _, v := range vs {
			httpReq.Header.Set(k, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: %s returned %d: %s", ErrUpstream, providerName, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices from %s", ErrUpstream, providerName)
	}
	if cr.Choices[0].Message.Content != "" {
		return cr.Choices[0].Message.Content, nil
	}
	return cr.Choices[0].Text, nil
}
