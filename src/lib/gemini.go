package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"medifinder/src/config"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// GeminiClient talks to the generateContent REST endpoint. When no API key
// is configured the client reports itself disabled and callers fall back to
// mock answers.
type GeminiClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

var geminiClient *GeminiClient

func GetGeminiClient() *GeminiClient {
	if geminiClient != nil {
		return geminiClient
	}
	geminiClient = &GeminiClient{
		BaseURL: config.GeminiBaseURL(),
		APIKey:  config.GeminiAPIKey(),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
	return geminiClient
}

// NewGeminiClient replaces the singleton with a custom client implementation
func NewGeminiClient(c *GeminiClient) *GeminiClient {
	geminiClient = c
	return geminiClient
}

func (c *GeminiClient) Enabled() bool {
	return c != nil && c.APIKey != ""
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

func (c *GeminiClient) generate(ctx context.Context, parts []geminiPart) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
	}
	body, err := json.Marshal(&payload)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, config.GEMINI_MODEL, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	sbody := string(resBytes)
	if res.StatusCode != http.StatusOK {
		status := gjson.Get(sbody, "error.status").String()
		if res.StatusCode == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED" {
			return "", ErrQuotaExceeded
		}
		return "", fmt.Errorf("gemini API error: %d %s", res.StatusCode, gjson.Get(sbody, "error.message").String())
	}
	text := gjson.Get(sbody, "candidates.0.content.parts.0.text").String()
	return strings.TrimSpace(text), nil
}

// GenerateContent runs a text-only prompt and returns the model's text reply.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []geminiPart{{Text: prompt}})
}

// GenerateContentWithImage runs a prompt against an inline base64 image.
func (c *GeminiClient) GenerateContentWithImage(ctx context.Context, prompt, mimeType, imageB64 string) (string, error) {
	return c.generate(ctx, []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageB64}},
	})
}

// ErrQuotaExceeded is surfaced verbatim to the user on image parsing paths.
var ErrQuotaExceeded = fmt.Errorf("API Quota Exceeded. Please check your plan and billing details, or try again later")
