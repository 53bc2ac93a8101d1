package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inboxagent/internal/config"
	"inboxagent/internal/models"
	"inboxagent/internal/utils"
)

// minAPIKeyLength rejects obviously truncated credentials.
const minAPIKeyLength = 30

var (
	// ErrAPIKeyMissing is returned when no credential is configured
	ErrAPIKeyMissing = errors.New("GEMINI_API_KEY not found in environment variables")
	// ErrAPIKeyTooShort is returned for credentials below minAPIKeyLength
	ErrAPIKeyTooShort = errors.New("GEMINI_API_KEY seems too short")
	// ErrAIDisabled is returned by every call on a disabled service
	ErrAIDisabled = errors.New("AI service is disabled")
)

// AIService wraps one AI provider for the pipeline and the chat/draft endpoints.
// A zero provider means the service is disabled; it is immutable after
// construction and safe for concurrent use.
type AIService struct {
	provider    AIProvider
	maxTokens   int
	temperature float64
	disabledErr error
	logger      *utils.Logger
}

// CleanAPIKey strips surrounding whitespace, then surrounding double and
// single quotes.
func CleanAPIKey(raw string) string {
	key := strings.TrimSpace(raw)
	key = strings.Trim(key, `"`)
	key = strings.Trim(key, `'`)
	return key
}

// ValidateAPIKey checks a cleaned key for presence and plausible length.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrAPIKeyMissing
	}
	if len(key) < minAPIKeyLength {
		return fmt.Errorf("%w (%d chars)", ErrAPIKeyTooShort, len(key))
	}
	return nil
}

// NewAIService validates the credential, builds the provider for the
// configured channel and performs one test generation. Any failure is
// returned; callers fall back to DisabledAIService.
func NewAIService(ctx context.Context, cfg config.AIConfig, logger *utils.Logger) (*AIService, error) {
	if logger == nil {
		logger = utils.NewLogger("AIService")
	}

	cfg.APIKey = CleanAPIKey(cfg.APIKey)
	if err := ValidateAPIKey(cfg.APIKey); err != nil {
		return nil, err
	}
	logger.Debug("API key found (%d chars), channel=%s model=%s", len(cfg.APIKey), cfg.Channel, cfg.Model)

	provider, err := NewAIProvider(cfg)
	if err != nil {
		return nil, err
	}

	svc := &AIService{
		provider:    provider,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
	if _, err := svc.generate(ctx, "Test"); err != nil {
		return nil, fmt.Errorf("failed to configure %s API: %w", cfg.Channel, err)
	}

	logger.Info("AI service initialized and tested successfully")
	return svc, nil
}

// NewAIServiceWithProvider wraps an existing provider without the test call.
func NewAIServiceWithProvider(provider AIProvider, logger *utils.Logger) *AIService {
	if logger == nil {
		logger = utils.NewLogger("AIService")
	}
	return &AIService{provider: provider, logger: logger}
}

// DisabledAIService returns a service in the explicit disabled state.
func DisabledAIService(reason error) *AIService {
	if reason == nil {
		reason = ErrAIDisabled
	}
	return &AIService{disabledErr: reason, logger: utils.NewLogger("AIService")}
}

// Enabled reports whether the service can reach a provider.
func (s *AIService) Enabled() bool {
	return s != nil && s.provider != nil
}

// DisabledReason returns why construction failed, or nil when enabled.
func (s *AIService) DisabledReason() error {
	if s.Enabled() {
		return nil
	}
	if s == nil || s.disabledErr == nil {
		return ErrAIDisabled
	}
	return s.disabledErr
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: %v", ErrAIDisabled, s.DisabledReason())
	}
	completion, err := s.provider.CallAI(ctx, []Message{{Role: "user", Content: prompt}}, s.maxTokens, s.temperature)
	if err != nil {
		return "", err
	}
	return completion.Content, nil
}

// GenerateResponse answers query about the email in emailContext. Failures
// are returned in the text as "Error: <reason>".
func (s *AIService) GenerateResponse(ctx context.Context, emailContext, query string) string {
	text, err := s.generate(ctx, assistantPrompt(emailContext, query))
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return text
}

// GenerateDraft writes a reply body for emailContent following instruction.
// Failures are returned in the text as "Error generating draft: <reason>".
func (s *AIService) GenerateDraft(ctx context.Context, emailContent, instruction string) string {
	text, err := s.generate(ctx, draftPrompt(emailContent, instruction))
	if err != nil {
		return fmt.Sprintf("Error generating draft: %v", err)
	}
	return text
}

// Categorize returns the model's category label for content.
func (s *AIService) Categorize(ctx context.Context, content string) (string, error) {
	text, err := s.generate(ctx, categorizePrompt(content))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Summarize returns a short summary of content.
func (s *AIService) Summarize(ctx context.Context, content string) (string, error) {
	text, err := s.generate(ctx, summarizePrompt(content))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExtractActionItems asks for a JSON list of tasks. Unparseable output is an
// empty list, not an error.
func (s *AIService) ExtractActionItems(ctx context.Context, content string) ([]models.ActionItem, error) {
	text, err := s.generate(ctx, actionItemsPrompt(content))
	if err != nil {
		return nil, err
	}
	return ParseActionItems(text), nil
}
