package database

import (
	"path/filepath"
	"testing"

	"inboxagent/internal/models"
)

func TestInitializeSQLiteMigratesSchema(t *testing.T) {
	err := Initialize(Config{
		Driver:   "sqlite",
		DBName:   filepath.Join(t.TempDir(), "inbox.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
		DB = nil
	})

	db := GetDB()
	for _, model := range []interface{}{&models.Email{}, &models.Prompt{}} {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("table for %T missing", model)
		}
	}
	if !db.Migrator().HasColumn(&models.Email{}, "action_items") {
		t.Fatalf("emails.action_items missing")
	}
	if !db.Migrator().HasColumn(&models.Prompt{}, "template_text") {
		t.Fatalf("prompts.template_text missing")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
