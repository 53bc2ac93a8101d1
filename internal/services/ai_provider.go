package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inboxagent/internal/config"

	"golang.org/x/net/proxy"
)

// AI channel identifiers accepted in AI_CHANNEL
const (
	AIChannelGemini = "gemini"
	AIChannelOpenAI = "openai"
	AIChannelClaude = "claude"
)

// Message is one chat turn sent to a provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the provider-neutral result of a generation call
type Completion struct {
	Model      string
	Content    string
	TokensUsed int
}

// AIProvider defines the interface for AI providers
type AIProvider interface {
	CallAI(ctx context.Context, messages []Message, maxTokens int, temperature float64) (*Completion, error)
}

// BaseAIService contains common functionality for AI services
type BaseAIService struct {
	Config config.AIConfig
	Client *http.Client
}

// NewAIProvider creates the appropriate AI provider based on channel type
func NewAIProvider(cfg config.AIConfig) (AIProvider, error) {
	client, err := newHTTPClient(cfg.Timeout, cfg.Proxy)
	if err != nil {
		return nil, err
	}
	base := &BaseAIService{Config: cfg, Client: client}

	switch strings.ToLower(cfg.Channel) {
	case AIChannelGemini, "":
		return &GeminiService{BaseAIService: base}, nil
	case AIChannelOpenAI:
		return &OpenAIService{BaseAIService: base}, nil
	case AIChannelClaude:
		return &ClaudeService{BaseAIService: base}, nil
	default:
		return nil, fmt.Errorf("unsupported AI channel: %s", cfg.Channel)
	}
}

// newHTTPClient builds the outbound client. proxyURL may be an http(s) proxy
// or a socks5 URL.
func newHTTPClient(timeout time.Duration, proxyURL string) (*http.Client, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid AI proxy URL: %w", err)
		}
		switch u.Scheme {
		case "http", "https":
			transport.Proxy = http.ProxyURL(u)
		default:
			dialer, err := proxy.FromURL(u, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("failed to create proxy dialer: %w", err)
			}
			transport.Proxy = nil
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				transport.DialContext = cd.DialContext
			} else {
				transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
					return dialer.Dial(network, addr)
				}
			}
		}
	}

	return &http.Client{Timeout: timeout, Transport: transport}, nil
}

// postJSON sends payload and decodes a 2xx response into out. Non-2xx
// responses are turned into an error carrying the provider's message.
func (b *BaseAIService) postJSON(ctx context.Context, provider, endpoint string, headers map[string]string, payload, out any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%s API error: %s", provider, errResp.Error.Message)
		}
		return fmt.Errorf("%s API error: status %d", provider, resp.StatusCode)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return fmt.Errorf("%s API returned HTML instead of JSON (status %d)", provider, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", provider, err)
	}
	return nil
}

func (b *BaseAIService) endpoint(path string) string {
	return strings.TrimSuffix(b.Config.BaseURL, "/") + path
}

// GeminiService implements the Gemini generateContent API
type GeminiService struct {
	*BaseAIService
}

// GeminiRequest represents the Gemini API request format
type GeminiRequest struct {
	Contents          []GeminiContent         `json:"contents"`
	SystemInstruction *GeminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiContent represents content in Gemini format
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of content
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiGenerationConfig represents generation configuration
type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GeminiResponse represents the Gemini API response
type GeminiResponse struct {
	Candidates    []GeminiCandidate `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// GeminiCandidate represents a response candidate
type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

// CallAI implements the Gemini API call
func (g *GeminiService) CallAI(ctx context.Context, messages []Message, maxTokens int, temperature float64) (*Completion, error) {
	req := GeminiRequest{}
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			req.SystemInstruction = &GeminiContent{Parts: []GeminiPart{{Text: msg.Content}}}
		case "assistant":
			req.Contents = append(req.Contents, GeminiContent{Role: "model", Parts: []GeminiPart{{Text: msg.Content}}})
		default:
			req.Contents = append(req.Contents, GeminiContent{Role: "user", Parts: []GeminiPart{{Text: msg.Content}}})
		}
	}
	if maxTokens > 0 || temperature > 0 {
		req.GenerationConfig = &GeminiGenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		}
	}

	model := strings.TrimPrefix(strings.TrimSpace(g.Config.Model), "models/")
	endpoint := g.endpoint(fmt.Sprintf("/models/%s:generateContent?key=%s", model, url.QueryEscape(g.Config.APIKey)))

	var resp GeminiResponse
	if err := g.postJSON(ctx, "Gemini", endpoint, nil, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}
	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		content.WriteString(part.Text)
	}
	if content.Len() == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	return &Completion{
		Model:      model,
		Content:    content.String(),
		TokensUsed: resp.UsageMetadata.TotalTokenCount,
	}, nil
}

// OpenAIService implements any OpenAI-compatible chat completions endpoint
type OpenAIService struct {
	*BaseAIService
}

// ChatCompletionRequest represents the request structure for OpenAI chat completion
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatCompletionResponse represents the response from OpenAI
type ChatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// CallAI implements the OpenAI chat completions call
func (s *OpenAIService) CallAI(ctx context.Context, messages []Message, maxTokens int, temperature float64) (*Completion, error) {
	req := ChatCompletionRequest{
		Model:       s.Config.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + s.Config.APIKey}

	var resp ChatCompletionResponse
	if err := s.postJSON(ctx, "OpenAI", s.endpoint("/chat/completions"), headers, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	return &Completion{
		Model:      resp.Model,
		Content:    resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// ClaudeService implements the Anthropic messages API
type ClaudeService struct {
	*BaseAIService
}

// ClaudeRequest represents the Claude API request format
type ClaudeRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	System      string    `json:"system,omitempty"`
}

// ClaudeResponse represents the Claude API response
type ClaudeResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// claudeDefaultMaxTokens is used when none is configured; the API requires one.
const claudeDefaultMaxTokens = 1024

// CallAI implements the Claude API call
func (c *ClaudeService) CallAI(ctx context.Context, messages []Message, maxTokens int, temperature float64) (*Completion, error) {
	var systemPrompt string
	var turns []Message
	for _, msg := range messages {
		if msg.Role == "system" {
			systemPrompt = msg.Content
		} else {
			turns = append(turns, msg)
		}
	}
	if maxTokens <= 0 {
		maxTokens = claudeDefaultMaxTokens
	}

	req := ClaudeRequest{
		Model:       c.Config.Model,
		Messages:    turns,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      systemPrompt,
	}
	headers := map[string]string{
		"x-api-key":         c.Config.APIKey,
		"anthropic-version": "2023-06-01",
	}

	var resp ClaudeResponse
	if err := c.postJSON(ctx, "Claude", c.endpoint("/messages"), headers, req, &resp); err != nil {
		return nil, err
	}
	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		return nil, fmt.Errorf("empty response from Claude")
	}

	return &Completion{
		Model:      resp.Model,
		Content:    content.String(),
		TokensUsed: resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}
