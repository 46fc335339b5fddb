package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduLane Tutoring API",
        "description": "Progress reporting and helpdesk backend for the tutoring platform",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Progress", "description": "Student progress reports"},
        {"name": "Insights", "description": "Advanced analytics (provider-backed)"},
        {"name": "Dashboard", "description": "Teacher class dashboard"},
        {"name": "Support", "description": "Helpdesk tickets and threads"},
        {"name": "System", "description": "Operational status"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/students/{id}/progress": {
            "get": {
                "tags": ["Progress"],
                "summary": "Student progress report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "range", "in": "query", "type": "string", "enum": ["last_month", "last_3_months", "last_6_months", "last_year", "custom"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "subjectId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Student belongs to another parent"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/insights": {
            "get": {
                "tags": ["Insights"],
                "summary": "Advanced insights for a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "501": {"description": "No insight provider configured"}
                }
            }
        },
        "/dashboard/class": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Teacher class dashboard",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "range", "in": "query", "type": "string", "enum": ["last_month", "last_3_months", "last_6_months", "last_year", "custom"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/class/export": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Download the class roll-up as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "range", "in": "query", "type": "string", "enum": ["last_month", "last_3_months", "last_6_months", "last_year", "custom"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/system/status": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated runtime metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Requires admin role"}
                }
            }
        },
        "/support/attachments/{token}": {
            "get": {
                "tags": ["Support"],
                "summary": "Resolve a signed attachment download token",
                "description": "The token is the credential; no bearer token is required.",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid or expired token"},
                    "404": {"description": "Attachment not found"}
                }
            }
        },
        "/support/tickets": {
            "get": {
                "tags": ["Support"],
                "summary": "List support tickets",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["open", "in_progress", "resolved", "closed"]},
                    {"name": "priority", "in": "query", "type": "string", "enum": ["low", "medium", "high"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Support"],
                "summary": "Open a support ticket",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTicketRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/support/tickets/{id}": {
            "get": {
                "tags": ["Support"],
                "summary": "Ticket detail with full thread",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Ticket belongs to another requester"},
                    "404": {"description": "Ticket not found"}
                }
            }
        },
        "/support/tickets/{id}/messages": {
            "post": {
                "tags": ["Support"],
                "summary": "Reply on a ticket thread",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Ticket is closed"}
                }
            }
        },
        "/support/tickets/{id}/status": {
            "patch": {
                "tags": ["Support"],
                "summary": "Move a ticket through its lifecycle",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Transition not allowed from current status"}
                }
            }
        }
    },
    "definitions": {
        "CreateTicketRequest": {
            "type": "object",
            "required": ["subject", "category", "body"],
            "properties": {
                "subject": {"type": "string"},
                "category": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "body": {"type": "string"},
                "attachments": {"type": "array", "items": {"$ref": "#/definitions/AttachmentInput"}}
            }
        },
        "ReplyRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {
                "body": {"type": "string"},
                "attachments": {"type": "array", "items": {"$ref": "#/definitions/AttachmentInput"}}
            }
        },
        "TransitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["open", "in_progress", "resolved", "closed"]}
            }
        },
        "AttachmentInput": {
            "type": "object",
            "required": ["file_name", "content_type", "size_bytes", "storage_key"],
            "properties": {
                "file_name": {"type": "string"},
                "content_type": {"type": "string"},
                "size_bytes": {"type": "integer"},
                "storage_key": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
