// Package docs registers the OpenAPI documents served under /auth/docs and
// /note/docs. Keep them in step with the godoc annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const (
	AuthInstance  = "auth"
	NotesInstance = "notes"
)

const errorDefinition = `
        "http.errorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        }`

const identityDefinition = `
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        }`

const docTemplateAuth = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Registers a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.signupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.signupResponse"}},
                    "400": {"description": "Username already registered", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchanges username and password for a token pair",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenPair"}},
                    "401": {"description": "Incorrect username or password", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Mints a new token pair from a refresh token",
                "description": "The token is read from the refresh_token query parameter, a JSON body or a form field.",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "refresh_token", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenPair"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Returns the authenticated user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Identity"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/validate": {
            "get": {
                "tags": ["auth"],
                "summary": "Resolves an access token to its user",
                "description": "Used by other services to trust their callers.",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Identity"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.TokenPair": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "http.signupRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "first_name": {"type": "string"}
            }
        },
        "http.signupResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },` + identityDefinition + `,` + errorDefinition + `
    }
}`

const docTemplateNotes = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/notes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notes"],
                "summary": "Lists the caller's notes",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Note"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notes"],
                "summary": "Creates a note owned by the caller",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.noteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Note"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/notes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notes"],
                "summary": "Returns one of the caller's notes",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Note"}},
                    "404": {"description": "Note not found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["notes"],
                "summary": "Updates the given fields of a note",
                "description": "Absent fields keep their value. The path id wins over any id in the body.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.noteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Note"}},
                    "404": {"description": "Note not found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["notes"],
                "summary": "Deletes one of the caller's notes",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.messageResponse"}},
                    "404": {"description": "Note not found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Note": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "http.noteRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "http.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },` + errorDefinition + `
    }
}`

var SwaggerInfoAuth = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/auth",
	Schemes:          []string{},
	Title:            "jarvis auth",
	Description:      "Signup, login and token validation.",
	InfoInstanceName: AuthInstance,
	SwaggerTemplate:  docTemplateAuth,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

var SwaggerInfoNotes = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/note",
	Schemes:          []string{},
	Title:            "jarvis notes",
	Description:      "Per-user notes. Callers are validated against the auth service.",
	InfoInstanceName: NotesInstance,
	SwaggerTemplate:  docTemplateNotes,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfoAuth.InstanceName(), SwaggerInfoAuth)
	swag.Register(SwaggerInfoNotes.InstanceName(), SwaggerInfoNotes)
}
