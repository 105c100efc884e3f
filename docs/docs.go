// Package docs holds the Swagger document served under /swagger/*.
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
        "/api/current-pdf": {
            "get": {
                "produces": ["application/json"],
                "tags": ["display"],
                "summary": "Document the public display should show",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Display"}},
                    "404": {"description": "No document available", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/uploads/{name}": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["display"],
                "summary": "Stream a stored PDF",
                "parameters": [{"type": "string", "description": "Stored name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "PDF content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/admin/documents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List documents, newest first",
                "parameters": [
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.DocumentListResult"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload a PDF",
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Pin the display to the upload", "name": "select", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Document"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "413": {"description": "Too large", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/admin/documents/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Get a document",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["documents"],
                "summary": "Delete a document and its file",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/admin/documents/{id}/rename": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Rename a document",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.renameRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/admin/documents/{id}/select": {
            "post": {
                "produces": ["application/json"],
                "tags": ["display"],
                "summary": "Pin the display to a document",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Document"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/admin/select-newest": {
            "post": {
                "tags": ["display"],
                "summary": "Let the display follow the newest upload",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Current settings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Settings"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update display settings; valid fields are applied even if others fail",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.settingsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Settings"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/admin/retention": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["retention"],
                "summary": "Update auto cleanup settings",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.retentionRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Settings"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/admin/retention/sweep": {
            "post": {
                "produces": ["application/json"],
                "tags": ["retention"],
                "summary": "Run one retention sweep",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SweepResult"}},
                    "409": {"description": "Sweep already running", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["ops"],
                "summary": "Database connectivity",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Unavailable"}}
            }
        },
        "/healthz": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "model.Document": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "stored_name": {"type": "string"},
                "original_name": {"type": "string"},
                "uploaded_at": {"type": "string", "format": "date-time"},
                "size_bytes": {"type": "integer"}
            }
        },
        "model.Display": {
            "type": "object",
            "properties": {
                "stored_name": {"type": "string"},
                "original_name": {"type": "string"},
                "url": {"type": "string"},
                "cycle_interval": {"type": "integer"},
                "background_color": {"type": "string"},
                "progress_indicator": {"type": "string", "enum": ["countdown", "progress", "none"]}
            }
        },
        "model.Settings": {
            "type": "object",
            "properties": {
                "selected_pdf_id": {"type": "integer"},
                "cycle_interval": {"type": "integer"},
                "background_color": {"type": "string"},
                "progress_indicator": {"type": "string"},
                "auto_cleanup_enabled": {"type": "boolean"},
                "auto_cleanup_days": {"type": "integer"}
            }
        },
        "service.DocumentListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "service.SweepResult": {
            "type": "object",
            "properties": {
                "skipped": {"type": "boolean"},
                "cutoff": {"type": "string", "format": "date-time"},
                "protected_id": {"type": "integer"},
                "candidates": {"type": "integer"},
                "metadata_deleted": {"type": "integer"},
                "files_removed": {"type": "integer"},
                "files_missing": {"type": "integer"},
                "files_failed": {"type": "integer"}
            }
        },
        "handler.renameRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "handler.settingsRequest": {
            "type": "object",
            "properties": {
                "cycle_interval": {"type": "integer"},
                "background_color": {"type": "string"},
                "progress_indicator": {"type": "string"}
            }
        },
        "handler.retentionRequest": {
            "type": "object",
            "properties": {
                "auto_cleanup_enabled": {"type": "boolean"},
                "auto_cleanup_days": {"type": "integer"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "fields": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Kundenstopper API",
	Description:      "Document library and display selection for the Kundenstopper sign.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
