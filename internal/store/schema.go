package store

// JSON Schemas for the persisted documents. Only structure and types are
// enforced here; value-range rules (points, difficulty, grade) belong to the
// input-validation layer, matching the historical data files which were never
// range-checked at rest.

// AssignmentsSchema validates the assignments document.
const AssignmentsSchema = `{
  "type": "object",
  "required": ["assignments"],
  "properties": {
    "assignments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "lab_module", "due_date", "created_by", "created_at", "is_active"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "lab_module": {"type": "string"},
          "difficulty": {"type": "string"},
          "points": {"type": "integer"},
          "due_date": {"type": "string"},
          "created_by": {"type": "string"},
          "created_at": {"type": "string"},
          "instructions": {"type": "string"},
          "resources": {"type": ["array", "null"], "items": {"type": "string"}},
          "is_active": {"type": "boolean"}
        }
      }
    }
  }
}`

// SubmissionsSchema validates the submissions document.
const SubmissionsSchema = `{
  "type": "object",
  "required": ["submissions"],
  "properties": {
    "submissions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "assignment_id", "student_username", "submitted_at", "status"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "assignment_id": {"type": "string", "minLength": 1},
          "student_username": {"type": "string", "minLength": 1},
          "submitted_at": {"type": "string"},
          "content": {"type": "string"},
          "files": {"type": ["array", "null"], "items": {"type": "string"}},
          "status": {"type": "string"},
          "grade": {"type": ["integer", "null"]},
          "feedback": {"type": ["string", "null"]},
          "graded_by": {"type": ["string", "null"]},
          "graded_at": {"type": ["string", "null"]},
          "approved_by": {"type": ["string", "null"]},
          "approved_at": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

// ActivitiesSchema validates the activity log document.
const ActivitiesSchema = `{
  "type": "object",
  "required": ["activities"],
  "properties": {
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "actor", "action", "created_at"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "actor": {"type": "string"},
          "action": {"type": "string"},
          "entity_type": {"type": "string"},
          "entity_id": {"type": "string"},
          "detail": {"type": "string"},
          "created_at": {"type": "string"}
        }
      }
    }
  }
}`
