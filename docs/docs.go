// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Backend Team"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/board": {
            "get": {
                "description": "Rooms, hallways and the card pools of the loaded reference data.",
                "produces": ["application/json"],
                "tags": ["Config"],
                "summary": "Board layout",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/config/bots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Config"],
                "summary": "Bot weights",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/sessions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "List sessions",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "description": "Start a game from an ordered roster. Roster order is the seating order.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Create a session",
                "parameters": [
                    {"description": "Roster", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}": {
            "delete": {
                "tags": ["Session"],
                "summary": "Remove a session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/state": {
            "get": {
                "description": "Per-viewer projection: only the viewer's own hand and knowledge are included.",
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Get session state",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Viewer", "name": "player_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Move options of a player",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Player ID", "name": "player_id", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/sessions/{id}/move": {
            "post": {
                "description": "Move to a room or hallway. Without destination the legal options are returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Move",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Move", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.MoveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/suggest": {
            "post": {
                "description": "Suggest a suspect and weapon in the current room.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Make a suggestion",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Suggestion", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SuggestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/disprove": {
            "post": {
                "description": "Only the designated disprover may call this, with one of the matching cards.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Disprove a suggestion",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Card to show", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.DisproveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/accuse": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Accuse",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Accusation", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AccuseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/end-turn": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "End the turn",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Player", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.EndTurnRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/solution": {
            "get": {
                "description": "Only registered when DEBUG is set.",
                "produces": ["application/json"],
                "tags": ["Debug"],
                "summary": "Reveal the case file",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        }
    },
    "definitions": {
        "http.PlayerSeat": {
            "type": "object",
            "properties": {
                "player_id": {"type": "string"},
                "name": {"type": "string"},
                "character": {"type": "string"},
                "bot": {"type": "boolean"}
            }
        },
        "http.CreateSessionRequest": {
            "type": "object",
            "required": ["players"],
            "properties": {
                "session_id": {"type": "string"},
                "players": {"type": "array", "items": {"$ref": "#/definitions/http.PlayerSeat"}},
                "seed": {"type": "integer"}
            }
        },
        "http.MoveRequest": {
            "type": "object",
            "required": ["player_id"],
            "properties": {
                "player_id": {"type": "string"},
                "destination": {"type": "string"}
            }
        },
        "http.SuggestRequest": {
            "type": "object",
            "required": ["player_id", "suspect", "weapon"],
            "properties": {
                "player_id": {"type": "string"},
                "suspect": {"type": "string"},
                "weapon": {"type": "string"}
            }
        },
        "http.DisproveRequest": {
            "type": "object",
            "required": ["player_id", "card_name"],
            "properties": {
                "player_id": {"type": "string"},
                "card_name": {"type": "string"}
            }
        },
        "http.AccuseRequest": {
            "type": "object",
            "required": ["player_id", "suspect", "weapon", "room"],
            "properties": {
                "player_id": {"type": "string"},
                "suspect": {"type": "string"},
                "weapon": {"type": "string"},
                "room": {"type": "string"}
            }
        },
        "http.EndTurnRequest": {
            "type": "object",
            "required": ["player_id"],
            "properties": {
                "player_id": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "message": {"type": "string"}
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
	Title:            "Clue-Less Game Server API",
	Description:      "Session coordinator for a deduction board game (Go + Gin)",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
