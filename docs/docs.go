// Package docs registers the Swagger document served under /swagger/.
// Keep it in step with the godoc annotations on the api handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/chat/agent": {
            "post": {
                "description": "Answers from the model, or an error string when the AI service is unavailable",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["agent"],
                "summary": "Ask a question about an email",
                "parameters": [
                    {
                        "description": "Chat request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.ChatRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/drafts/generate": {
            "post": {
                "description": "Drafts a reply body for the email following the optional instruction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Generate a reply draft",
                "parameters": [
                    {
                        "description": "Draft request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.DraftRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DraftResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/emails": {
            "get": {
                "description": "Get all stored emails with decoded action items",
                "produces": ["application/json"],
                "tags": ["emails"],
                "summary": "List emails",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.EmailResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/emails/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["emails"],
                "summary": "Get email by ID",
                "parameters": [
                    {"type": "integer", "description": "Email ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.EmailResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "get the status of server and whether the AI service is enabled.",
                "consumes": ["*/*"],
                "produces": ["application/json"],
                "tags": ["root"],
                "summary": "Show the status of server.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/ingest": {
            "post": {
                "description": "Replace all stored emails with the mock inbox file, annotated by the AI service",
                "produces": ["application/json"],
                "tags": ["ingest"],
                "summary": "Ingest the mock inbox",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.IngestResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/prompts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "List prompt templates",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.PromptResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/prompts/update": {
            "post": {
                "description": "Upsert the template text for a prompt type",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "Create or update a prompt template",
                "parameters": [
                    {
                        "description": "Prompt update",
                        "name": "prompt",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.PromptUpdateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.PromptResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ChatRequest": {
            "type": "object",
            "properties": {
                "email_id": {"type": "integer", "example": 1},
                "user_query": {"type": "string", "example": "What do I need to do?"}
            }
        },
        "api.ChatResponse": {
            "type": "object",
            "properties": {
                "response": {"type": "string"}
            }
        },
        "api.DraftRequest": {
            "type": "object",
            "properties": {
                "email_id": {"type": "integer", "example": 1},
                "user_instruction": {"description": "Defaults to \"Draft a professional reply\"", "type": "string", "example": "Politely decline"}
            }
        },
        "api.DraftResponse": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "subject": {"type": "string", "example": "Re: Q3 report"}
            }
        },
        "api.EmailResponse": {
            "type": "object",
            "properties": {
                "action_items": {"description": "Always a list, empty when nothing was extracted", "type": "array", "items": {"$ref": "#/definitions/models.ActionItem"}},
                "body": {"type": "string"},
                "category": {"description": "AI category, \"Uncategorized\" when the model call failed", "type": "string", "example": "Urgent Work"},
                "id": {"type": "integer", "example": 1},
                "is_read": {"type": "boolean", "example": false},
                "sender": {"type": "string", "example": "boss@company.com"},
                "subject": {"type": "string", "example": "Q3 report"},
                "summary": {"description": "AI summary, \"Summary not available\" when the model call failed", "type": "string"},
                "timestamp": {"type": "string", "example": "2024-10-01T09:00:00"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string", "example": "Email not found"}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "ai_enabled": {"type": "boolean", "example": true},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "api.IngestResponse": {
            "type": "object",
            "properties": {
                "ai_enabled": {"type": "boolean", "example": true},
                "count": {"type": "integer", "example": 12},
                "status": {"type": "string", "example": "ingested"}
            }
        },
        "api.PromptResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "last_updated": {"type": "string"},
                "prompt_type": {"type": "string", "example": "categorize"},
                "template_text": {"type": "string"}
            }
        },
        "api.PromptUpdateRequest": {
            "type": "object",
            "properties": {
                "prompt_type": {"type": "string", "example": "summarize"},
                "template_text": {"type": "string", "example": "Summarize this email in one sentence."}
            }
        },
        "models.ActionItem": {
            "type": "object",
            "properties": {
                "deadline": {"type": "string"},
                "task": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Inbox Agent API",
	Description:      "Mock inbox ingestion with AI categorization, summaries, action items, chat and reply drafts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
