package api

import (
	"time"

	"inboxagent/internal/models"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail" example:"Email not found"`
}

// HealthResponse reports liveness and whether the AI service is usable
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	AIEnabled bool   `json:"ai_enabled" example:"true"`
}

// IngestResponse is returned by POST /ingest
type IngestResponse struct {
	Status    string `json:"status" example:"ingested"`
	Count     int    `json:"count" example:"12"`
	AIEnabled bool   `json:"ai_enabled" example:"true"`
}

// EmailResponse represents a stored email with decoded action items
type EmailResponse struct {
	ID        int64  `json:"id" example:"1"`
	Sender    string `json:"sender" example:"boss@company.com"`
	Subject   string `json:"subject" example:"Q3 report"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp" example:"2024-10-01T09:00:00"`
	IsRead    bool   `json:"is_read" example:"false"`
	// AI category, "Uncategorized" when the model call failed
	Category *string `json:"category" example:"Urgent Work"`
	// AI summary, "Summary not available" when the model call failed
	Summary *string `json:"summary"`
	// Always a list, empty when nothing was extracted
	ActionItems []models.ActionItem `json:"action_items"`
}

// PromptResponse represents one prompt template
type PromptResponse struct {
	ID           uint      `json:"id" example:"1"`
	PromptType   string    `json:"prompt_type" example:"categorize"`
	TemplateText string    `json:"template_text"`
	LastUpdated  time.Time `json:"last_updated"`
}

// PromptUpdateRequest is the body of POST /prompts/update
type PromptUpdateRequest struct {
	PromptType   *string `json:"prompt_type" example:"summarize"`
	TemplateText *string `json:"template_text" example:"Summarize this email in one sentence."`
}

// ChatRequest is the body of POST /chat/agent
type ChatRequest struct {
	EmailID   *int64  `json:"email_id" example:"1"`
	UserQuery *string `json:"user_query" example:"What do I need to do?"`
}

// ChatResponse carries the model answer or an error string
type ChatResponse struct {
	Response string `json:"response"`
}

// DraftRequest is the body of POST /drafts/generate
type DraftRequest struct {
	EmailID *int64 `json:"email_id" example:"1"`
	// Defaults to "Draft a professional reply"
	UserInstruction *string `json:"user_instruction,omitempty" example:"Politely decline"`
}

// DraftResponse is a generated reply
type DraftResponse struct {
	Subject string `json:"subject" example:"Re: Q3 report"`
	Body    string `json:"body"`
}

// ConvertEmailToResponse converts a stored email to its API form
func ConvertEmailToResponse(email *models.Email) EmailResponse {
	return EmailResponse{
		ID:          email.ID,
		Sender:      email.Sender,
		Subject:     email.Subject,
		Body:        email.Body,
		Timestamp:   email.Timestamp,
		IsRead:      email.IsRead,
		Category:    email.Category,
		Summary:     email.Summary,
		ActionItems: models.DecodeActionItems(email.ActionItems),
	}
}

// ConvertPromptToResponse converts a stored prompt to its API form
func ConvertPromptToResponse(prompt *models.Prompt) PromptResponse {
	return PromptResponse{
		ID:           prompt.ID,
		PromptType:   string(prompt.PromptType),
		TemplateText: prompt.TemplateText,
		LastUpdated:  prompt.UpdatedAt,
	}
}
