package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"inboxagent/internal/models"
	"inboxagent/internal/repository"
	"inboxagent/internal/services"
	"inboxagent/internal/utils"

	"github.com/gorilla/mux"
)

const (
	defaultDraftInstruction = "Draft a professional reply"
	chatUnavailableMessage  = "AI Service not available. Please check your GEMINI_API_KEY in .env"
	draftUnavailableMessage = "AI Service not available. Check GEMINI_API_KEY."
)

// APIHandler serves the inbox endpoints
type APIHandler struct {
	EmailRepo  *repository.EmailRepository
	PromptRepo *repository.PromptRepository
	AI         *services.AIService
	Ingestor   *services.IngestService
	logger     *utils.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(
	emailRepo *repository.EmailRepository,
	promptRepo *repository.PromptRepository,
	ai *services.AIService,
	ingestor *services.IngestService,
) *APIHandler {
	return &APIHandler{
		EmailRepo:  emailRepo,
		PromptRepo: promptRepo,
		AI:         ai,
		Ingestor:   ingestor,
		logger:     utils.NewLogger("API"),
	}
}

// HealthCheck godoc
// @Summary Show the status of server.
// @Description get the status of server and whether the AI service is enabled.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *APIHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", AIEnabled: h.AI.Enabled()})
}

// IngestHandler godoc
// @Summary Ingest the mock inbox
// @Description Replace all stored emails with the mock inbox file, annotated by the AI service
// @Tags ingest
// @Produce json
// @Success 200 {object} IngestResponse
// @Failure 500 {object} ErrorResponse
// @Router /ingest [post]
func (h *APIHandler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Ingestor.Ingest(r.Context())
	if err != nil {
		h.logger.Error("Ingestion failed: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, IngestResponse{
		Status:    result.Status,
		Count:     result.Count,
		AIEnabled: result.AIEnabled,
	})
}

// GetEmailsHandler godoc
// @Summary List emails
// @Description Get all stored emails with decoded action items
// @Tags emails
// @Produce json
// @Success 200 {array} EmailResponse
// @Failure 500 {object} ErrorResponse
// @Router /emails [get]
func (h *APIHandler) GetEmailsHandler(w http.ResponseWriter, r *http.Request) {
	emails, err := h.EmailRepo.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := make([]EmailResponse, len(emails))
	for i := range emails {
		response[i] = ConvertEmailToResponse(&emails[i])
	}
	respondJSON(w, http.StatusOK, response)
}

// GetEmailHandler godoc
// @Summary Get email by ID
// @Tags emails
// @Produce json
// @Param id path int true "Email ID"
// @Success 200 {object} EmailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /emails/{id} [get]
func (h *APIHandler) GetEmailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email ID")
		return
	}

	email, ok := h.lookupEmail(w, id)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ConvertEmailToResponse(email))
}

// GetPromptsHandler godoc
// @Summary List prompt templates
// @Tags prompts
// @Produce json
// @Success 200 {array} PromptResponse
// @Failure 500 {object} ErrorResponse
// @Router /prompts [get]
func (h *APIHandler) GetPromptsHandler(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.PromptRepo.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := make([]PromptResponse, len(prompts))
	for i := range prompts {
		response[i] = ConvertPromptToResponse(&prompts[i])
	}
	respondJSON(w, http.StatusOK, response)
}

// UpdatePromptHandler godoc
// @Summary Create or update a prompt template
// @Description Upsert the template text for a prompt type
// @Tags prompts
// @Accept json
// @Produce json
// @Param prompt body PromptUpdateRequest true "Prompt update"
// @Success 200 {object} PromptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /prompts/update [post]
func (h *APIHandler) UpdatePromptHandler(w http.ResponseWriter, r *http.Request) {
	var req PromptUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PromptType == nil || strings.TrimSpace(*req.PromptType) == "" {
		respondError(w, http.StatusBadRequest, "prompt_type is required")
		return
	}
	if len(*req.PromptType) > models.MaxPromptTypeLength {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("prompt_type must be at most %d characters", models.MaxPromptTypeLength))
		return
	}
	if req.TemplateText == nil {
		respondError(w, http.StatusBadRequest, "template_text is required")
		return
	}

	prompt, err := h.PromptRepo.Upsert(models.PromptType(*req.PromptType), *req.TemplateText)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ConvertPromptToResponse(prompt))
}

// ChatAgentHandler godoc
// @Summary Ask a question about an email
// @Description Answers from the model, or an error string when the AI service is unavailable
// @Tags agent
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat request"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /chat/agent [post]
func (h *APIHandler) ChatAgentHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmailID == nil {
		respondError(w, http.StatusBadRequest, "email_id is required")
		return
	}
	if req.UserQuery == nil {
		respondError(w, http.StatusBadRequest, "user_query is required")
		return
	}

	if !h.AI.Enabled() {
		respondJSON(w, http.StatusOK, ChatResponse{Response: chatUnavailableMessage})
		return
	}

	email, ok := h.lookupEmail(w, *req.EmailID)
	if !ok {
		return
	}

	answer := h.AI.GenerateResponse(r.Context(), emailContext(email), *req.UserQuery)
	respondJSON(w, http.StatusOK, ChatResponse{Response: answer})
}

// GenerateDraftHandler godoc
// @Summary Generate a reply draft
// @Description Drafts a reply body for the email following the optional instruction
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body DraftRequest true "Draft request"
// @Success 200 {object} DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/generate [post]
func (h *APIHandler) GenerateDraftHandler(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmailID == nil {
		respondError(w, http.StatusBadRequest, "email_id is required")
		return
	}

	if !h.AI.Enabled() {
		respondJSON(w, http.StatusOK, DraftResponse{Subject: "Error", Body: draftUnavailableMessage})
		return
	}

	email, ok := h.lookupEmail(w, *req.EmailID)
	if !ok {
		return
	}

	instruction := defaultDraftInstruction
	if req.UserInstruction != nil && *req.UserInstruction != "" {
		instruction = *req.UserInstruction
	}

	body := h.AI.GenerateDraft(r.Context(), emailContext(email), instruction)
	respondJSON(w, http.StatusOK, DraftResponse{
		Subject: "Re: " + email.Subject,
		Body:    body,
	})
}

// lookupEmail writes the 404/500 response itself when it returns false.
func (h *APIHandler) lookupEmail(w http.ResponseWriter, id int64) (*models.Email, bool) {
	email, err := h.EmailRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrEmailNotFound) {
			respondError(w, http.StatusNotFound, "Email not found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return email, true
}

// emailContext renders a stored email for the chat and draft prompts.
func emailContext(email *models.Email) string {
	return fmt.Sprintf("From: %s\nSubject: %s\nBody: %s", email.Sender, email.Subject, email.Body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, ErrorResponse{Detail: detail})
}
