package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	defaultBaseURL     = "https://api.openai.com/v1/chat/completions"

	captionTemperature = 0.4
	tagTemperature     = 0.2
)

// Config captures the runtime settings required to talk to the API.
type Config struct {
	APIKey         string
	BaseURL        string
	CaptionModel   string
	TagModel       string
	TimeoutSeconds int
}

// Client wraps the chat completions API for the two pipeline operations:
// captioning an image and tagging an existing caption.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			CaptionModel:   strings.TrimSpace(cfg.CaptionModel),
			TagModel:       strings.TrimSpace(cfg.TagModel),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	return client
}

// Caption is the structured result of a captioning call.
type Caption struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

// TagResult is the structured result of a tagging call.
type TagResult struct {
	Tags       []string
	Characters []string
}

// CaptionImage sends the image to the vision model and returns the generated
// title and caption. Fields may come back empty; the caller owns fallbacks.
func (c *Client) CaptionImage(ctx context.Context, imagePath, kind string) (Caption, error) {
	var empty Caption
	if c.cfg.APIKey == "" {
		return empty, errors.New("caption request: api key required")
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return empty, fmt.Errorf("caption request: read image: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(imagePath)), ".")
	dataURL := "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)

	payload := chatCompletionRequest{
		Model: c.cfg.CaptionModel,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: captionPrompt(kind)},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		Temperature: captionTemperature,
	}

	content, err := c.sendChatRequest(ctx, payload, "caption request")
	if err != nil {
		return empty, err
	}

	var parsed Caption
	if err := DecodeModelJSON(content, &parsed); err != nil {
		return empty, fmt.Errorf("caption request: parse payload: %w", err)
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Caption = strings.TrimSpace(parsed.Caption)
	return parsed, nil
}

// TagCaption derives tags and character names from an existing title and
// caption via a text-only call. Tags are deduplicated case-insensitively
// (first casing wins) and capped at maxTags. A malformed tags field is an
// error; a malformed characters field degrades to an empty list, since tags
// are required content and characters are optional enrichment.
func (c *Client) TagCaption(ctx context.Context, title, caption, kind string, maxTags int) (TagResult, error) {
	var empty TagResult
	if c.cfg.APIKey == "" {
		return empty, errors.New("tag request: api key required")
	}
	if maxTags <= 0 {
		maxTags = 10
	}

	payload := chatCompletionRequest{
		Model: c.cfg.TagModel,
		Messages: []chatMessage{
			{Role: "user", Content: tagPrompt(title, caption, kind, maxTags)},
		},
		Temperature: tagTemperature,
	}

	content, err := c.sendChatRequest(ctx, payload, "tag request")
	if err != nil {
		return empty, err
	}

	var parsed struct {
		Tags       json.RawMessage `json:"tags"`
		Characters json.RawMessage `json:"characters"`
	}
	if err := DecodeModelJSON(content, &parsed); err != nil {
		return empty, fmt.Errorf("tag request: parse payload: %w", err)
	}

	tags, err := stringList(parsed.Tags)
	if err != nil {
		return empty, fmt.Errorf("tag request: invalid tags field: %w", err)
	}
	characters, err := stringList(parsed.Characters)
	if err != nil {
		characters = nil
	}

	return TagResult{
		Tags:       capList(dedupeCaseInsensitive(tags), maxTags),
		Characters: dedupeCaseInsensitive(characters),
	}, nil
}

// stringList unwraps a JSON array, keeping only non-empty string elements.
// A missing field is an empty list; a non-array value is an error.
func stringList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values, nil
}

func dedupeCaseInsensitive(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func capList(values []string, max int) []string {
	if len(values) > max {
		return values[:max]
	}
	return values
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatMessage content is either a plain string (text-only calls) or a slice
// of contentPart (vision calls).
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) sendChatRequest(ctx context.Context, payload chatCompletionRequest, op string) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: encode body: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: http error: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%s: http %d: %s", op, resp.StatusCode, summarizePayloadSnippet(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("%s: api error: %s", op, strings.TrimSpace(completion.Error.Message))
	}
	for _, choice := range completion.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content, nil
		}
		if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" {
			return "", fmt.Errorf("%s: model refused: %s", op, refusal)
		}
	}
	return "", fmt.Errorf("%s: empty content", op)
}
