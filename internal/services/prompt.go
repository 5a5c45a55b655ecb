package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildProfileAnalysisPrompt embeds the job description and the résumé text
// verbatim and asks for a strict JSON analysis.
func (pb *PromptBuilder) BuildProfileAnalysisPrompt(jobDescription, profileText string) string {
	return fmt.Sprintf(`You are an expert recruiter and HR specialist. Analyze this CV against this job offer and provide a detailed score.

JOB OFFER:
%s

CV TO ANALYZE:
%s

Respond with a strict JSON object in exactly this format:
{
  "candidate_name": "Candidate name (if found)",
  "overall_score": 85,
  "detailed_scores": {
    "technical_skills": {
      "score": 90,
      "explanation": "Strong technical skills matching the requirements"
    },
    "experience": {
      "score": 80,
      "explanation": "Five years of relevant experience in the field"
    },
    "education": {
      "score": 85,
      "explanation": "Solid education and relevant degrees"
    },
    "soft_skills": {
      "score": 75,
      "explanation": "Good interpersonal skills demonstrated"
    },
    "cultural_fit": {
      "score": 80,
      "explanation": "Profile aligned with the company values"
    }
  },
  "strengths": [
    "Strength 1",
    "Strength 2",
    "Strength 3"
  ],
  "weaknesses": [
    "Weakness 1",
    "Weakness 2"
  ],
  "recommendation": "%s",
  "summary": "Two or three sentences explaining why this candidate fits the role or not"
}

IMPORTANT:
- Respond ONLY with the JSON, no additional text
- Make sure the JSON is valid
- Scores range from 0 to 100
- The overall score must be a weighted average of the detailed scores
- Be objective and precise in your evaluation`,
		strings.TrimSpace(jobDescription), strings.TrimSpace(profileText), strings.Join(recommendationLabels, " | "))
}

var recommendationLabels = []string{
	"HIGHLY_RECOMMENDED",
	"RECOMMENDED",
	"CONDITIONAL",
	"NOT_RECOMMENDED",
}
