// Package docs registers the OpenAPI document served at /swagger/*any.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/health": {"get": {"tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "API is healthy"}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Readiness Check", "responses": {"200": {"description": "API is ready"}, "503": {"description": "Storage unavailable"}}}},
        "/live": {"get": {"tags": ["Health"], "summary": "Liveness Check", "responses": {"200": {"description": "API is alive"}}}},
        "/api/v1/packs": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["Packs"],
                "summary": "Publish a pack version",
                "parameters": [
                    {"type": "file", "name": "tarball", "in": "formData", "required": true},
                    {"type": "string", "name": "metadata", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid name, version or manifest"},
                    "401": {"description": "Unauthenticated"},
                    "403": {"description": "Not the author or insufficient scope"},
                    "409": {"description": "Version already published"},
                    "413": {"description": "Tarball exceeds maximum size"},
                    "429": {"description": "Publish rate limit exceeded"}
                }
            }
        },
        "/api/v1/packs/{name}": {
            "get": {"tags": ["Packs"], "summary": "Get a pack", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/packs/{name}/deprecate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Packs"], "summary": "Set or clear deprecation", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/packs/{name}/versions": {
            "get": {"tags": ["Packs"], "summary": "List versions of a pack", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/packs/{name}/versions/{version}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Packs"], "summary": "Yank a version", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "version", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/packs/{name}/reviews": {
            "get": {"tags": ["Reviews"], "summary": "List reviews of a pack", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "integer", "name": "limit", "in": "query"}, {"type": "integer", "name": "offset", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Reviews"], "summary": "Create or replace the caller's review", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid rating"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Self-review"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Reviews"], "summary": "Delete the caller's review", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}}}
        },
        "/api/v1/packs/{name}/reviews/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Reviews"], "summary": "Get the caller's review", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/packs/{name}/webhooks": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Webhooks"], "summary": "List a pack's webhooks", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Webhooks"], "summary": "Register a webhook", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid url or events"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/packs/{name}/webhooks/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Webhooks"], "summary": "Update a webhook", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid url or events"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Webhooks"], "summary": "Delete a webhook", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}}}
        },
        "/api/v1/packs/{name}/webhooks/{id}/deliveries": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Webhooks"], "summary": "Delivery log of a webhook", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Not the author"}, "404": {"description": "Not Found"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Agent Packs Registry API",
	Description:      "Publish, review and subscribe to versioned agent packs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
