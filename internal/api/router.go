package api

import (
	"net/http"

	"inboxagent/internal/utils"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates a new router with all the necessary routes.
func NewRouter(handler *APIHandler) http.Handler {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Ingestion
	router.HandleFunc("/ingest", handler.IngestHandler).Methods("POST")

	// Emails
	router.HandleFunc("/emails", handler.GetEmailsHandler).Methods("GET")
	router.HandleFunc("/emails/{id}", handler.GetEmailHandler).Methods("GET")

	// Prompt templates
	router.HandleFunc("/prompts", handler.GetPromptsHandler).Methods("GET")
	router.HandleFunc("/prompts/update", handler.UpdatePromptHandler).Methods("POST")

	// AI agent
	router.HandleFunc("/chat/agent", handler.ChatAgentHandler).Methods("POST")
	router.HandleFunc("/drafts/generate", handler.GenerateDraftHandler).Methods("POST")

	// Swagger documentation
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	logger := utils.NewLogger("HTTP")
	router.Use(recoverMiddleware(logger))

	return enableCORS(utils.HTTPLoggingMiddleware(logger)(router))
}
