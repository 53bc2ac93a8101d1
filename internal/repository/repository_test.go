package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"inboxagent/internal/database"
	"inboxagent/internal/models"

	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Config{
		Driver:   "sqlite",
		DBName:   filepath.Join(t.TempDir(), "repo.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestEmailRepositoryReplaceCycle(t *testing.T) {
	repo := NewEmailRepository(openTestDB(t))

	first := []models.Email{
		{ID: 1, Sender: "a@x.com", Subject: "One"},
		{ID: 2, Sender: "b@x.com", Subject: "Two"},
		{ID: 3, Sender: "c@x.com", Subject: "Three"},
	}
	if err := repo.CreateBatch(first); err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := repo.DeleteAll()
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}

	second := []models.Email{{ID: 2, Sender: "b@x.com", Subject: "Again"}}
	if err := repo.CreateBatch(second); err != nil {
		t.Fatalf("recreate: %v", err)
	}
	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	got, err := repo.GetByID(2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Subject != "Again" {
		t.Fatalf("subject = %q", got.Subject)
	}
}

func TestEmailRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewEmailRepository(openTestDB(t))
	if _, err := repo.GetByID(42); !errors.Is(err, ErrEmailNotFound) {
		t.Fatalf("err = %v, want ErrEmailNotFound", err)
	}
}

func TestEmailRepositoryPreservesNullableFields(t *testing.T) {
	repo := NewEmailRepository(openTestDB(t))
	category := "Meeting"
	if err := repo.CreateBatch([]models.Email{{ID: 7, Category: &category}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	emails, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("len = %d", len(emails))
	}
	if emails[0].Category == nil || *emails[0].Category != "Meeting" {
		t.Fatalf("category = %v", emails[0].Category)
	}
	if emails[0].Summary != nil || emails[0].ActionItems != nil {
		t.Fatalf("expected NULL summary and action items, got %v / %v", emails[0].Summary, emails[0].ActionItems)
	}
}

func TestPromptRepositoryUpsert(t *testing.T) {
	repo := NewPromptRepository(openTestDB(t))

	created, err := repo.Upsert("tone_check", "Is this polite?")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if n, _ := repo.Count(); n != 1 {
		t.Fatalf("count after create = %d, want 1", n)
	}

	updated, err := repo.Upsert("tone_check", "Is this rude?")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed: %d -> %d", created.ID, updated.ID)
	}
	if n, _ := repo.Count(); n != 1 {
		t.Fatalf("count after update = %d, want 1", n)
	}

	stored, err := repo.GetByType("tone_check")
	if err != nil || stored == nil {
		t.Fatalf("get: %v, %v", stored, err)
	}
	if stored.TemplateText != "Is this rude?" {
		t.Fatalf("text = %q", stored.TemplateText)
	}
}

func TestPromptRepositorySeedsOnce(t *testing.T) {
	repo := NewPromptRepository(openTestDB(t))

	seeded, err := repo.InitializeDefaultPrompts()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatalf("expected first call to seed")
	}
	if n, _ := repo.Count(); n != int64(len(DefaultPrompts)) {
		t.Fatalf("count = %d, want %d", n, len(DefaultPrompts))
	}

	if _, err := repo.Upsert(models.PromptSummarize, "custom"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	seeded, err = repo.InitializeDefaultPrompts()
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if seeded {
		t.Fatalf("expected second call to be a no-op")
	}
	p, _ := repo.GetByType(models.PromptSummarize)
	if p.TemplateText != "custom" {
		t.Fatalf("edited template overwritten: %q", p.TemplateText)
	}
}

func TestPromptRepositoryGetByTypeMissing(t *testing.T) {
	repo := NewPromptRepository(openTestDB(t))
	p, err := repo.GetByType(models.PromptReplyNegative)
	if err != nil || p != nil {
		t.Fatalf("got %v, %v; want nil, nil", p, err)
	}
}
