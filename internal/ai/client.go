package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"mailmate/internal/config"
	"mailmate/internal/logger"
	"mailmate/internal/service"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// Summarizer model limits. Text below minSummarizeLength is returned as-is,
// input beyond maxInputChars is truncated before the call.
const (
	minSummarizeLength = 100
	maxInputChars      = 1024
)

type aiClient struct {
	provider   string
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(provider, apiKey string, logger *logger.Logger) service.Summarizer {
	if provider == "" {
		provider = ProviderHuggingFace
	}
	timeoutSeconds := config.GetEnvInt("SUMMARIZER_TIMEOUT_SECONDS", 30)

	return &aiClient{
		provider:   provider,
		apiKey:     apiKey,
		baseURL:    getBaseURL(provider),
		model:      getModel(provider),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		logger:     logger,
	}
}

func getBaseURL(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	default:
		return "https://api-inference.huggingface.co"
	}
}

func getModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "sshleifer/distilbart-cnn-12-6"
	}
}

// Summarize produces a short abstractive summary of the text. Short inputs
// come back verbatim, long inputs are truncated to the model's limit.
func (c *aiClient) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if len(text) < minSummarizeLength {
		return text, nil
	}
	if len(text) > maxInputChars {
		// Back up to a rune boundary so the provider never sees a split
		// multi-byte character.
		cut := maxInputChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	switch c.provider {
	case ProviderOpenAI:
		return c.summarizeOpenAI(ctx, text)
	default:
		return c.summarizeHuggingFace(ctx, text)
	}
}

// Hugging Face inference API request/response structures
type hfSummarizeRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters hfSummarizeParams  `json:"parameters"`
	Options    hfSummarizeOptions `json:"options"`
}

type hfSummarizeParams struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfSummarizeOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfSummarizeResponse struct {
	SummaryText string `json:"summary_text"`
}

func (c *aiClient) summarizeHuggingFace(ctx context.Context, text string) (string, error) {
	reqBody := hfSummarizeRequest{
		Inputs: text,
		Parameters: hfSummarizeParams{
			MaxLength: 150,
			MinLength: 30,
			DoSample:  false,
		},
		Options: hfSummarizeOptions{WaitForModel: true},
	}

	body, err := c.post(ctx, c.baseURL+"/models/"+c.model, reqBody)
	if err != nil {
		return "", err
	}

	var results []hfSummarizeResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("failed to parse summarization response: %w", err)
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		return "", fmt.Errorf("summarization returned no result")
	}
	return strings.TrimSpace(results[0].SummaryText), nil
}

// OpenAI API request/response structures
type chatCompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message message `json:"message"`
}

func (c *aiClient) summarizeOpenAI(ctx context.Context, text string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: "Summarize the following email in two or three sentences. Reply with the summary only."},
			{Role: "user", Content: text},
		},
		MaxTokens: 150,
	}

	body, err := c.post(ctx, c.baseURL+"/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse summarization response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("summarization returned no result")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func (c *aiClient) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summarization request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Summarization provider error:", resp.StatusCode, string(body))
		return nil, fmt.Errorf("summarization provider returned status %d", resp.StatusCode)
	}
	return body, nil
}
