package repository

import (
	"errors"

	"inboxagent/internal/models"

	"gorm.io/gorm"
)

// ErrEmailNotFound is returned when no email has the requested id
var ErrEmailNotFound = errors.New("email not found")

// EmailRepository handles database operations for Email
type EmailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new EmailRepository
func NewEmailRepository(db *gorm.DB) *EmailRepository {
	return &EmailRepository{db: db}
}

// List returns every stored email ordered by id
func (r *EmailRepository) List() ([]models.Email, error) {
	var emails []models.Email
	err := r.db.Order("id ASC").Find(&emails).Error
	return emails, err
}

// GetByID retrieves an email by ID
func (r *EmailRepository) GetByID(id int64) (*models.Email, error) {
	var email models.Email
	err := r.db.First(&email, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	return &email, nil
}

// Count returns the number of stored emails
func (r *EmailRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Email{}).Count(&count).Error
	return count, err
}

// DeleteAll removes every email row
func (r *EmailRepository) DeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Email{})
	return result.RowsAffected, result.Error
}

// CreateBatch inserts all emails in a single transaction
func (r *EmailRepository) CreateBatch(emails []models.Email) error {
	if len(emails) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(emails, 100).Error
	})
}
