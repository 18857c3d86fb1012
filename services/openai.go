package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lgu-leganes/bizportal/log"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a single prompt to the chat API. Failures come back as
// explanatory strings, never as errors.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) string {
	if c.openAIKey == "" {
		return "Missing API key."
	}

	body, err := json.Marshal(chatRequest{
		Model:       "gpt-3.5-turbo",
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: 0.8,
	})
	if err != nil {
		return "Error generating response."
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.OpenAIURL, bytes.NewReader(body))
	if err != nil {
		return "Error generating response."
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.openAIKey)

	res, err := c.http.Do(req)
	if err != nil {
		log.Errorf("openai.request: %s", err)
		return "Error generating response."
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Errorf("openai.request: status %d", res.StatusCode)
		return "Error generating response."
	}

	var data chatResponse
	err = json.NewDecoder(res.Body).Decode(&data)
	if err != nil {
		log.Errorf("openai.parse_body: %s", err)
		return "Error generating response."
	}

	if len(data.Choices) == 0 {
		return "No response."
	}
	content := strings.TrimSpace(data.Choices[0].Message.Content)
	if content == "" {
		return "No response."
	}
	return content
}
