package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AssignoFast Sync Agent",
        "description": "Headless portal sync agent: scrapes the VTOP timetable and digital assignments, pushes changed snapshots to the AssignoFast backend",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Backend session lifecycle"},
        {"name": "Semesters", "description": "Portal semester dropdown and selection"},
        {"name": "Sync", "description": "Pipeline runs and status"},
        {"name": "Snapshots", "description": "Last synced timetable and assignments"},
        {"name": "Exports", "description": "Snapshot downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/session": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a Google access token for a backend session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            },
            "get": {
                "tags": ["Auth"],
                "summary": "Report the stored session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Auth"],
                "summary": "Clear the session and all cached snapshots",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/semesters": {
            "get": {
                "tags": ["Semesters"],
                "summary": "List semester options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/semesters/refresh": {
            "post": {
                "tags": ["Semesters"],
                "summary": "Re-scrape the semester dropdown from the portal",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/semesters/current": {
            "put": {
                "tags": ["Semesters"],
                "summary": "Switch the active semester and trigger a sync",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectSemesterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown semester id"}
                }
            }
        },
        "/sync": {
            "post": {
                "tags": ["Sync"],
                "summary": "Queue an immediate sync run",
                "responses": {
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sync/status": {
            "get": {
                "tags": ["Sync"],
                "summary": "Report the session and the last pipeline run",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Last synced weekly timetable",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No timetable synced yet"}
                }
            }
        },
        "/assignments": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Last synced digital assignments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No assignments synced yet"}
                }
            }
        },
        "/timetable/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the last synced timetable",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "404": {"description": "No timetable synced yet"}
                }
            }
        },
        "/assignments/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the last synced assignments",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "404": {"description": "No assignments synced yet"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["uid", "email", "reg_no", "google_access_token"],
            "properties": {
                "uid": {"type": "string"},
                "email": {"type": "string"},
                "reg_no": {"type": "string"},
                "google_access_token": {"type": "string"}
            }
        },
        "SelectSemesterRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"}
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
