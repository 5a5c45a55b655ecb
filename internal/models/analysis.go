package models

import (
	"time"
)

type ScoreCategory string

const (
	CategoryTechnicalSkills ScoreCategory = "technical_skills"
	CategoryExperience      ScoreCategory = "experience"
	CategoryEducation       ScoreCategory = "education"
	CategorySoftSkills      ScoreCategory = "soft_skills"
	CategoryCulturalFit     ScoreCategory = "cultural_fit"
)

// ScoreCategories is the closed set of scored dimensions, in prompt order.
var ScoreCategories = []ScoreCategory{
	CategoryTechnicalSkills,
	CategoryExperience,
	CategoryEducation,
	CategorySoftSkills,
	CategoryCulturalFit,
}

type Recommendation string

const (
	RecommendationHighlyRecommended Recommendation = "HIGHLY_RECOMMENDED"
	RecommendationRecommended       Recommendation = "RECOMMENDED"
	RecommendationConditional       Recommendation = "CONDITIONAL"
	RecommendationNotRecommended    Recommendation = "NOT_RECOMMENDED"
)

type DetailedScore struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

type CandidateAnalysis struct {
	Filename       string                          `json:"filename"`
	CandidateName  string                          `json:"candidate_name"`
	OverallScore   int                             `json:"overall_score"`
	DetailedScores map[ScoreCategory]DetailedScore `json:"detailed_scores"`
	Strengths      []string                        `json:"strengths"`
	Weaknesses     []string                        `json:"weaknesses"`
	Recommendation Recommendation                  `json:"recommendation"`
	Summary        string                          `json:"summary"`
	AnalyzedAt     time.Time                       `json:"analyzed_at"`
	Failed         bool                            `json:"failed"`
}

// UniformScores fills every category with the same score and explanation.
func UniformScores(score int, explanation string) map[ScoreCategory]DetailedScore {
	scores := make(map[ScoreCategory]DetailedScore, len(ScoreCategories))
	for _, category := range ScoreCategories {
		scores[category] = DetailedScore{Score: score, Explanation: explanation}
	}
	return scores
}

type BatchResult struct {
	RunID         string              `json:"run_id"`
	TotalAnalyzed int                 `json:"total_analyzed"`
	TopCandidates []CandidateAnalysis `json:"top_candidates"`
	AllCandidates []CandidateAnalysis `json:"all_candidates"`
	StartedAt     time.Time           `json:"started_at"`
	CompletedAt   time.Time           `json:"completed_at"`
}

type BatchEventType string

const (
	EventBatchStarted      BatchEventType = "batch.started"
	EventDocumentCompleted BatchEventType = "document.completed"
	EventBatchCompleted    BatchEventType = "batch.completed"
)

// BatchEvent is a progress notification emitted while a batch runs.
type BatchEvent struct {
	RunID     string         `json:"run_id"`
	Type      BatchEventType `json:"type"`
	Filename  string         `json:"filename,omitempty"`
	Score     int            `json:"score,omitempty"`
	Failed    bool           `json:"failed,omitempty"`
	Index     int            `json:"index,omitempty"`
	Total     int            `json:"total"`
	Timestamp time.Time      `json:"timestamp"`
}
