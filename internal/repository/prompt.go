package repository

import (
	"errors"

	"inboxagent/internal/models"

	"gorm.io/gorm"
)

// PromptRepository handles database operations for prompt templates
type PromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// DefaultPrompts are seeded into an empty prompts table.
var DefaultPrompts = []models.Prompt{
	{PromptType: models.PromptCategorize, TemplateText: "Categorize this email into: Urgent Work, Meeting, Newsletter, Spam, Personal, or General based on content and urgency."},
	{PromptType: models.PromptSummarize, TemplateText: "Summarize this email in 2-3 concise sentences highlighting the main point."},
	{PromptType: models.PromptActionItems, TemplateText: "Extract all action items, tasks, and deadlines from this email. Return as JSON array."},
	{PromptType: models.PromptReplyPositive, TemplateText: "Draft a positive and professional reply to this email."},
	{PromptType: models.PromptReplyNegative, TemplateText: "Draft a polite decline to this email."},
}

// List returns all prompt templates
func (r *PromptRepository) List() ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.Order("id ASC").Find(&prompts).Error
	return prompts, err
}

// GetByType returns the template for a prompt type, or nil if none exists
func (r *PromptRepository) GetByType(promptType models.PromptType) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.Where("prompt_type = ?", promptType).First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}

// Count returns the number of stored templates
func (r *PromptRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Prompt{}).Count(&count).Error
	return count, err
}

// Upsert updates the template text for promptType, creating the row if needed
func (r *PromptRepository) Upsert(promptType models.PromptType, templateText string) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("prompt_type = ?", promptType).First(&prompt).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			prompt = models.Prompt{PromptType: promptType, TemplateText: templateText}
			return tx.Create(&prompt).Error
		case err != nil:
			return err
		}
		prompt.TemplateText = templateText
		return tx.Save(&prompt).Error
	})
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// InitializeDefaultPrompts seeds DefaultPrompts when the table is empty.
// It reports whether anything was inserted.
func (r *PromptRepository) InitializeDefaultPrompts() (bool, error) {
	seeded := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Prompt{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		prompts := make([]models.Prompt, len(DefaultPrompts))
		copy(prompts, DefaultPrompts)
		if err := tx.Create(&prompts).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}
