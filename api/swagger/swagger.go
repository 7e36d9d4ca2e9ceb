package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LPU Scheduler API",
        "description": "Class schedule management with time normalization and conflict detection",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Schedule entry CRUD and candidate checks"},
        {"name": "Conflicts", "description": "Room and faculty double-booking reports"},
        {"name": "Catalog", "description": "Section, faculty and room lookup tables"},
        {"name": "Files", "description": "Dataset import, export and reset"},
        {"name": "Reports", "description": "Per-group timetable downloads"},
        {"name": "Auth", "description": "Admin authentication"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/schedule-entries": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List schedule entries",
                "parameters": [
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "faculty", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Create schedule entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Invalid time or day format"}
                }
            }
        },
        "/schedule-entries/{id}": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Get schedule entry",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Schedule"],
                "summary": "Replace schedule entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "422": {"description": "Invalid time or day format"}
                }
            },
            "delete": {
                "tags": ["Schedule"],
                "summary": "Delete schedule entry",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/schedule-entries/preview-conflicts": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Check a candidate entry against the stored schedule",
                "parameters": [
                    {"name": "exclude_id", "in": "query", "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Grouped conflict report",
                "parameters": [
                    {"name": "ignore_faculty", "in": "query", "type": "boolean"},
                    {"name": "ignore_room", "in": "query", "type": "boolean"},
                    {"name": "ignore_tba", "in": "query", "type": "boolean"},
                    {"name": "ignore_faculty_list", "in": "query", "type": "string"},
                    {"name": "ignore_room_list", "in": "query", "type": "string"},
                    {"name": "faculty_contains", "in": "query", "type": "boolean"},
                    {"name": "room_contains", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/entries/{id}": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Conflict records keyed at one entry",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/{kind}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List catalog names",
                "parameters": [{"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["sections", "faculty", "rooms"]}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Register a catalog name",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["sections", "faculty", "rooms"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateNamedEntityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/files/import-csv": {
            "post": {
                "tags": ["Files"],
                "summary": "Import a schedule CSV",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "replace", "in": "query", "type": "boolean"},
                    {"name": "preview", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Import summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Replace imports require admin login"}
                }
            }
        },
        "/files/export-csv": {
            "get": {
                "tags": ["Files"],
                "summary": "Download the full schedule as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/files/timetable-png": {
            "post": {
                "tags": ["Files"],
                "summary": "Store a client-rendered timetable PNG",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimetablePNGRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/files/reset": {
            "post": {
                "tags": ["Files"],
                "summary": "Clear every scheduler table",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Reset"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/reports/timetable": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download one group's timetable",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "group", "in": "query", "required": true, "type": "string", "enum": ["section", "faculty", "room"]},
                    {"name": "value", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Timetable file"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ScheduleEntryRequest": {
            "type": "object",
            "properties": {
                "program": {"type": "string"},
                "section": {"type": "string"},
                "course_code": {"type": "string"},
                "course_description": {"type": "string"},
                "units": {"type": "number"},
                "hours": {"type": "number"},
                "time_display": {"type": "string", "example": "10:00a-12:00p"},
                "days": {"type": "string", "example": "M,W,F"},
                "room": {"type": "string"},
                "faculty": {"type": "string"}
            }
        },
        "CreateNamedEntityRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            }
        },
        "TimetablePNGRequest": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "string"},
                "group": {"type": "string", "enum": ["section", "faculty", "room"]},
                "name": {"type": "string"},
                "image": {"type": "string", "description": "Base64-encoded PNG"}
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
