package services

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const candidateAnalysisSchemaJSON = `{
  "type": "object",
  "required": ["candidate_name", "overall_score", "detailed_scores", "strengths", "weaknesses", "recommendation", "summary"],
  "properties": {
    "candidate_name": {"type": "string"},
    "overall_score": {"type": "number", "minimum": 0, "maximum": 100},
    "detailed_scores": {
      "type": "object",
      "required": ["technical_skills", "experience", "education", "soft_skills", "cultural_fit"],
      "properties": {
        "technical_skills": {"$ref": "#/$defs/detailedScore"},
        "experience": {"$ref": "#/$defs/detailedScore"},
        "education": {"$ref": "#/$defs/detailedScore"},
        "soft_skills": {"$ref": "#/$defs/detailedScore"},
        "cultural_fit": {"$ref": "#/$defs/detailedScore"}
      }
    },
    "strengths": {"type": "array", "items": {"type": "string"}},
    "weaknesses": {"type": "array", "items": {"type": "string"}},
    "recommendation": {"enum": ["HIGHLY_RECOMMENDED", "RECOMMENDED", "CONDITIONAL", "NOT_RECOMMENDED"]},
    "summary": {"type": "string"}
  },
  "$defs": {
    "detailedScore": {
      "type": "object",
      "required": ["score", "explanation"],
      "properties": {
        "score": {"type": "number", "minimum": 0, "maximum": 100},
        "explanation": {"type": "string"}
      }
    }
  }
}`

var candidateAnalysisSchema = jsonschema.MustCompileString("candidate_analysis.json", candidateAnalysisSchemaJSON)
