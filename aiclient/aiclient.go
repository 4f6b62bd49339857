// SPDX-License-Identifier: GPL-3.0-or-later
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/log"

	"github.com/sirupsen/logrus"
)

const CompletionTimeout = 120 * time.Second

// Client talks to a chat-completions style API and implements the
// AIClassifier contract.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string

	l *logrus.Logger
}

func NewClient(baseURL, apiKey string) (*Client, error) {
	if len(baseURL) == 0 {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	return &Client{
		client: &http.Client{
			Timeout: CompletionTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		l:       log.Logger(log.LOG_AI),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, params domain.ModelParams) (string, error) {
	request := chatRequest{
		Model: params.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}

	encoded, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("could not encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("could not create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not send request to classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from classifier, expected 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read classifier response: %w", err)
	}

	response := &chatResponse{}
	err = json.Unmarshal(body, response)
	if err != nil {
		return "", fmt.Errorf("could not deserialize classifier response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in classifier response")
	}

	c.l.WithFields(logrus.Fields{"model": params.Model, "duration": time.Since(start)}).Debug("Completed classifier call")
	return response.Choices[0].Message.Content, nil
}
