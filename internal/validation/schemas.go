package validation

const filterSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "skills": {
      "type": ["array", "null"],
      "maxItems": 50,
      "items": {"type": "string", "maxLength": 200}
    },
    "min_experience": {"type": ["number", "null"]},
    "max_experience": {"type": ["number", "null"]},
    "location": {"type": ["string", "null"], "maxLength": 200},
    "project_start_date": {"type": ["string", "null"], "maxLength": 40}
  }
}`

const searchSchema = `{
  "type": "object",
  "required": ["filter"],
  "additionalProperties": false,
  "properties": {
    "filter": ` + filterSchema + `,
    "sort": {"type": ["string", "null"], "maxLength": 40}
  }
}`

const refineSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "designations": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "location": {"type": ["string", "null"]},
    "min_exp": {"type": ["number", "null"], "minimum": 0},
    "max_exp": {"type": ["number", "null"], "minimum": 0}
  }
}`

const skillList = `{"type": ["array", "null"], "items": {"type": "string"}}`

const candidatesSchema = `{
  "type": "array",
  "maxItems": 100000,
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string"},
      "primary_skills": ` + skillList + `,
      "secondary_skills": ` + skillList + `,
      "additional_skills": ` + skillList + `,
      "total_experience": {"type": "number"},
      "designation": {"type": "string"},
      "location": {"type": "string"},
      "joining_status": {"type": "string"},
      "assign_date": {"type": ["string", "null"]},
      "available_from": {"type": "string"},
      "deployment_status": {"type": "string"},
      "deployment_status_secondary": {"type": "string"},
      "wfm_manager": {"type": "string"}
    }
  }
}`
