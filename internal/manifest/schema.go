package manifest

// ProjectSchemaJSON documents the minitt.yaml project file shape as a
// JSON Schema (the file itself is YAML; this is kept for tooling that
// wants to validate it, mirroring the teacher's habit of shipping a
// schema alongside its manifest loader).
const ProjectSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "minitt.manifest/v1",
  "title": "minitt project file",
  "description": "Ordered list of .stt files elaborated together by minitt check/run",
  "type": "object",
  "required": ["schema", "files"],
  "additionalProperties": false,
  "properties": {
    "schema": {
      "type": "string",
      "const": "minitt.manifest/v1"
    },
    "files": {
      "type": "array",
      "description": "Ordered .stt source files, relative to this file",
      "items": {
        "type": "string",
        "pattern": "\\.stt$"
      },
      "minItems": 1
    },
    "normalize": {
      "type": "array",
      "description": "Declaration names to print in normal form after elaboration",
      "items": {"type": "string"}
    },
    "timing": {
      "type": "boolean",
      "description": "Report wall-clock elaboration time for every declaration"
    }
  }
}`
