package models

import (
	"encoding/json"
	"time"
)

// Email represents a single ingested mock message with its AI-derived fields.
type Email struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Sender    string `gorm:"index"`
	Subject   string
	Body      string `gorm:"type:text"`
	Timestamp string
	IsRead    bool `gorm:"default:false"`

	// AI-generated fields
	Category    *string
	Summary     *string `gorm:"type:text"`
	ActionItems *string `gorm:"type:text"` // JSON array of ActionItem
}

// TableName specifies the table name for GORM
func (Email) TableName() string {
	return "emails"
}

// ActionItem is one task extracted from an email body.
type ActionItem struct {
	Task     string `json:"task"`
	Deadline string `json:"deadline"`
}

// EncodeActionItems serializes items for the action_items column. An empty
// list is stored as NULL.
func EncodeActionItems(items []ActionItem) (*string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

// DecodeActionItems reads the action_items column back into a list. NULL,
// empty and undecodable values all yield an empty, non-nil list.
func DecodeActionItems(raw *string) []ActionItem {
	items := []ActionItem{}
	if raw == nil || *raw == "" {
		return items
	}
	if err := json.Unmarshal([]byte(*raw), &items); err != nil || items == nil {
		return []ActionItem{}
	}
	return items
}

// PromptType identifies a pipeline stage or reply style a template belongs to.
type PromptType string

const (
	PromptCategorize    PromptType = "categorize"
	PromptSummarize     PromptType = "summarize"
	PromptActionItems   PromptType = "action_items"
	PromptReplyPositive PromptType = "reply_positive"
	PromptReplyNegative PromptType = "reply_negative"
)

// MaxPromptTypeLength matches the prompt_type column size.
const MaxPromptTypeLength = 64

// Prompt holds the editable template text for one prompt type
type Prompt struct {
	ID           uint       `gorm:"primaryKey"`
	PromptType   PromptType `gorm:"not null;uniqueIndex;type:varchar(64)"`
	TemplateText string     `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (Prompt) TableName() string {
	return "prompts"
}
