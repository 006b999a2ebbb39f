package copywriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
)

const (
	defaultLMStudioURL = "http://localhost:1234"
	defaultOpenAIURL   = "https://api.openai.com"
	defaultOpenAIModel = "gpt-3.5-turbo-instruct"
	defaultTimeout     = 60 * time.Second

	maxTokens   = 250
	temperature = 0.7
)

var lineMarkerRe = regexp.MustCompile(`^(?:\s*[\d]+[.)\-•*]?\s*)`)

type completionRequest struct {
	Model       string   `json:"model,omitempty"`
	Prompt      string   `json:"prompt"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature float64  `json:"temperature"`
	Stop        []string `json:"stop"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// completionsClient talks to a /v1/completions endpoint, which both LM Studio
// and the OpenAI legacy completions API expose.
type completionsClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  logger.Logger
}

func newLMStudioClient(cfg *config.Config, log logger.Logger) *completionsClient {
	baseURL := cfg.Copywriter.LMStudioURL
	if baseURL == "" {
		baseURL = defaultLMStudioURL
	}
	return &completionsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeoutFromConfig(cfg)},
		logger:  log,
	}
}

func newOpenAIClient(cfg *config.Config, log logger.Logger) *completionsClient {
	baseURL := cfg.Copywriter.OpenAIURL
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	model := cfg.Copywriter.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &completionsClient{
		baseURL: baseURL,
		apiKey:  cfg.Copywriter.OpenAIKey,
		model:   model,
		client:  &http.Client{Timeout: timeoutFromConfig(cfg)},
		logger:  log,
	}
}

func timeoutFromConfig(cfg *config.Config) time.Duration {
	if cfg.Copywriter.TimeoutSeconds > 0 {
		return time.Duration(cfg.Copywriter.TimeoutSeconds) * time.Second
	}
	return defaultTimeout
}

func (c *completionsClient) Generate(ctx context.Context, product models.ProductRecord, count int) ([]string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       c.model,
		Prompt:      buildPrompt(product, count),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stop:        []string{"\n\n"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("completions request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result completionResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode completions response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("completions response contained no choices")
	}

	lines := CleanLines(result.Choices[0].Text)
	c.logger.Infof("copywriter returned %d usable lines (requested %d)", len(lines), count)
	return lines, nil
}

// CleanLines strips numbering, bullet markers and stray quotes the model
// tends to add despite the prompt, dropping lines that end up empty.
func CleanLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		line = lineMarkerRe.ReplaceAllString(line, "")
		line = strings.Trim(line, `"`)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func buildPrompt(product models.ProductRecord, count int) string {
	return fmt.Sprintf(`You are a professional ad copywriter. Create exactly %d short, catchy lines for a video ad based on the product below.

PRODUCT DETAILS:
Title: %s
Price: %s
Description: %s

REQUIREMENTS:
- Write exactly %d lines (no more, no less)
- Each line must be 4-7 words only
- Use clean, benefit-focused, persuasive language
- DO NOT use emojis, punctuation, asterisks, or symbols
- DO NOT use numbering or list formatting (e.g., 1., 2.)
- DO NOT include quotation marks, headings, or extra text
- Return each line on a separate new line
- Final output must be raw plain text only

FORMAT EXAMPLE:
High Strength Durable Materials
Perfect Fit With Adjustable Design
Waterproof And Lightweight For Travel
Great Value Two Pack Combo

Begin your response immediately with the first line.`,
		count, product.Title, product.Price, product.Description, count)
}
