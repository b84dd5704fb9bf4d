package composer

// compositionSchema is the JSON Schema the collaborator response must
// satisfy after key normalization. It defines every field the adapter
// consumes; anything beyond it is ignored, anything violating it sends
// the request down the fallback path.
const compositionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["teams"],
  "properties": {
    "teams": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["members"],
        "properties": {
          "name": { "type": "string" },
          "members": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["id", "name"],
              "properties": {
                "id": { "type": "string" },
                "name": { "type": "string" },
                "role": { "type": "string" },
                "level": { "type": "string" }
              }
            }
          }
        }
      }
    },
    "recommended_leader": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": { "type": "string" },
        "name": { "type": "string" },
        "rationale": { "type": "string" }
      }
    },
    "team_analysis": {
      "type": "object",
      "properties": {
        "strengths": { "type": "array", "items": { "type": "string" } },
        "weaknesses": { "type": "array", "items": { "type": "string" } },
        "compatibility": { "type": "string" }
      }
    },
    "compatibility_score": { "type": "number" },
    "recommended_members": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": { "type": "string" },
          "name": { "type": "string" },
          "compatibility_score": { "type": "number" },
          "analysis": { "type": "string" },
          "potential_conflicts": { "type": "array", "items": { "type": "string" } },
          "team_impact": { "type": "string" }
        }
      }
    }
  }
}`
