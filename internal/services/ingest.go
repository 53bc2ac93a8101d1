package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"inboxagent/internal/models"
	"inboxagent/internal/repository"
	"inboxagent/internal/utils"
)

// Fallback values stored when an AI call fails for one email.
const (
	FallbackCategory = "Uncategorized"
	FallbackSummary  = "Summary not available"
)

var (
	// ErrAIUnavailable is returned by Ingest when the AI service is disabled
	ErrAIUnavailable = errors.New("AI Service not initialized. Check .env")
	// ErrSourceNotFound is returned when neither mock inbox path exists
	ErrSourceNotFound = errors.New("Mock data file not found")
)

// MockEmail is one record of the mock inbox source file
type MockEmail struct {
	ID        int64  `json:"id"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"is_read"`
}

// Content renders the record the way it is presented to the model.
func (m MockEmail) Content() string {
	return fmt.Sprintf("From: %s\nSubject: %s\n\n%s", m.Sender, m.Subject, m.Body)
}

// IngestResult is returned by a successful ingestion
type IngestResult struct {
	Status    string `json:"status"`
	Count     int    `json:"count"`
	AIEnabled bool   `json:"ai_enabled"`
}

// IngestService replaces the stored inbox with an AI-annotated copy of the
// mock inbox file.
type IngestService struct {
	emailRepo    *repository.EmailRepository
	promptRepo   *repository.PromptRepository
	ai           *AIService
	primaryPath  string
	fallbackPath string
	logger       *utils.Logger
}

// NewIngestService creates a new ingestion service
func NewIngestService(
	emailRepo *repository.EmailRepository,
	promptRepo *repository.PromptRepository,
	ai *AIService,
	primaryPath, fallbackPath string,
) *IngestService {
	return &IngestService{
		emailRepo:    emailRepo,
		promptRepo:   promptRepo,
		ai:           ai,
		primaryPath:  primaryPath,
		fallbackPath: fallbackPath,
		logger:       utils.NewLogger("Ingest"),
	}
}

// LoadMockInbox reads the source file from primary, or from fallback when
// primary does not exist. It returns the records and the path actually read.
func LoadMockInbox(primary, fallback string) ([]MockEmail, string, error) {
	path := primary
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && fallback != "" {
		path = fallback
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrSourceNotFound
		}
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	var records []MockEmail
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, path, fmt.Errorf("decode %s: %w", path, err)
	}
	if records == nil {
		return nil, path, fmt.Errorf("decode %s: not a JSON array", path)
	}
	return records, path, nil
}

// Ingest runs the full pipeline. A failing AI call for one email is replaced
// by that field's fallback and never aborts the run. Cancelling ctx stops the
// run before anything is inserted.
func (s *IngestService) Ingest(ctx context.Context) (*IngestResult, error) {
	if !s.ai.Enabled() {
		s.logger.Error("AI service not available: %v", s.ai.DisabledReason())
		return nil, ErrAIUnavailable
	}

	records, path, err := LoadMockInbox(s.primaryPath, s.fallbackPath)
	if err != nil {
		s.logger.Error("Failed to load mock inbox: %v", err)
		return nil, err
	}
	s.logger.Info("Loaded %d emails from %s", len(records), path)

	if deleted, err := s.emailRepo.DeleteAll(); err != nil {
		s.logger.Warn("Error clearing emails: %v", err)
	} else {
		s.logger.Debug("Cleared %d existing emails", deleted)
	}

	seeded, err := s.promptRepo.InitializeDefaultPrompts()
	if err != nil {
		return nil, fmt.Errorf("seed default prompts: %w", err)
	}
	if seeded {
		s.logger.Info("Seeded default prompts")
	}

	emails := make([]models.Email, 0, len(records))
	for idx, record := range records {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("Ingestion cancelled after %d/%d emails", idx, len(records))
			return nil, err
		}
		s.logger.Info("Processing email %d/%d: %s", idx+1, len(records), truncate(record.Subject, 50))

		email, err := s.annotate(ctx, record)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	if err := ctx.Err(); err != nil {
		s.logger.Warn("Ingestion cancelled before insert")
		return nil, err
	}

	if err := s.emailRepo.CreateBatch(emails); err != nil {
		return nil, fmt.Errorf("store emails: %w", err)
	}

	s.logger.Info("Ingestion completed: %d emails processed", len(records))
	return &IngestResult{Status: "ingested", Count: len(records), AIEnabled: true}, nil
}

// annotate runs the three AI calls for one record and applies fallbacks.
func (s *IngestService) annotate(ctx context.Context, record MockEmail) (models.Email, error) {
	content := record.Content()
	log := s.logger.With("email_id", record.ID)

	category, err := s.ai.Categorize(ctx, content)
	if err != nil {
		log.Warn("Error categorizing: %v", err)
		category = FallbackCategory
	}

	summary, err := s.ai.Summarize(ctx, content)
	if err != nil {
		log.Warn("Error generating summary: %v", err)
		summary = FallbackSummary
	}

	items, err := s.ai.ExtractActionItems(ctx, content)
	if err != nil {
		log.Warn("Error extracting action items: %v", err)
		items = nil
	}
	log.Debug("Category=%q, %d action items", category, len(items))

	encoded, err := models.EncodeActionItems(items)
	if err != nil {
		return models.Email{}, fmt.Errorf("encode action items for email %d: %w", record.ID, err)
	}

	return models.Email{
		ID:          record.ID,
		Sender:      record.Sender,
		Subject:     record.Subject,
		Body:        record.Body,
		Timestamp:   record.Timestamp,
		IsRead:      record.IsRead,
		Category:    &category,
		Summary:     &summary,
		ActionItems: encoded,
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
