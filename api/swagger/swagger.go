package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIAKAD Schedule Validation API",
        "description": "Conflict detection and workload validation for class schedules",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Validations", "description": "Schedule item and whole-schedule validation"},
        {"name": "Availability", "description": "Free rooms and free teaching slots"},
        {"name": "Reports", "description": "Lecturer workload and period conflict reports"},
        {"name": "Conflict Logs", "description": "Audit trail of detected conflicts"}
    ],
    "paths": {
        "/validations/schedule-item": {
            "post": {
                "tags": ["Validations"],
                "summary": "Validate one proposed schedule item",
                "parameters": [
                    {"name": "excludeItemId", "in": "query", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleItemCandidate"}}
                ],
                "responses": {"200": {"description": "Validation result"}}
            }
        },
        "/validations/schedule-items:batch": {
            "post": {
                "tags": ["Validations"],
                "summary": "Validate several schedule items in one call",
                "responses": {"200": {"description": "Batch validation result"}}
            }
        },
        "/validations/dosen-conflicts": {
            "get": {
                "tags": ["Validations"],
                "summary": "Check lecturer double-booking for a time window",
                "parameters": [
                    {"name": "lecturerId", "in": "query", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "start", "in": "query", "type": "string", "required": true},
                    {"name": "end", "in": "query", "type": "string", "required": true},
                    {"name": "excludeItemId", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "Conflict check result"}}
            }
        },
        "/validations/ruangan-conflicts": {
            "get": {
                "tags": ["Validations"],
                "summary": "Check room double-booking for a time window",
                "responses": {"200": {"description": "Conflict check result"}}
            }
        },
        "/validations/mahasiswa-conflicts": {
            "get": {
                "tags": ["Validations"],
                "summary": "Check enrolled-student overlaps for a time window",
                "responses": {"200": {"description": "Conflict check result"}}
            }
        },
        "/schedules/{id}/validation": {
            "get": {
                "tags": ["Validations"],
                "summary": "Validate every item of a program schedule",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Complete schedule result"}}
            }
        },
        "/rooms/available": {
            "get": {
                "tags": ["Availability"],
                "summary": "List rooms free for a time window",
                "parameters": [
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "start", "in": "query", "type": "string", "required": true},
                    {"name": "end", "in": "query", "type": "string", "required": true},
                    {"name": "minCapacity", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "Available rooms"}}
            }
        },
        "/lecturers/{id}/available-slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "List canonical teaching slots free for a lecturer",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "Slot availability"}}
            }
        },
        "/lecturers/{id}/workload": {
            "get": {
                "tags": ["Reports"],
                "summary": "Lecturer SKS workload for an academic period",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "periodId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "Workload report"}}
            }
        },
        "/periods/{id}/conflict-report": {
            "get": {
                "tags": ["Reports"],
                "summary": "Period-wide conflict report",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Conflict report"}}
            }
        },
        "/periods/{id}/conflict-report/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the period conflict report as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File download"}}
            }
        },
        "/conflict-logs": {
            "get": {
                "tags": ["Conflict Logs"],
                "summary": "List logged conflicts",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "severity", "in": "query", "type": "string"},
                    {"name": "resolved", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "Conflict log page"}}
            }
        },
        "/conflict-logs/stats": {
            "get": {
                "tags": ["Conflict Logs"],
                "summary": "Conflict log counters for dashboards",
                "responses": {"200": {"description": "Counters"}}
            }
        },
        "/conflict-logs/{id}": {
            "get": {
                "tags": ["Conflict Logs"],
                "summary": "Get one logged conflict",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Conflict log entry"}}
            }
        },
        "/conflict-logs/{id}/resolve": {
            "patch": {
                "tags": ["Conflict Logs"],
                "summary": "Mark a logged conflict as resolved",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResolveConflictRequest"}}
                ],
                "responses": {"200": {"description": "Updated conflict log entry"}}
            }
        }
    },
    "definitions": {
        "ScheduleItemCandidate": {
            "type": "object",
            "required": ["schedule_id", "lecturer_id", "room_id", "day_of_week", "start_time", "end_time"],
            "properties": {
                "schedule_id": {"type": "string"},
                "lecturer_id": {"type": "string"},
                "room_id": {"type": "string"},
                "course_id": {"type": "string"},
                "day_of_week": {"type": "string"},
                "start_time": {"type": "string", "example": "07:00"},
                "end_time": {"type": "string", "example": "08:40"},
                "capacity": {"type": "integer"}
            }
        },
        "ResolveConflictRequest": {
            "type": "object",
            "required": ["notes"],
            "properties": {
                "notes": {"type": "string"}
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
                "pagination": {"type": "object"},
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
