package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"alfredoptarigan/profile-screener/internal/models"
)

const (
	DefaultScoringTemperature float32 = 0.1
	DefaultScoringMaxTokens           = 2000

	neutralScore = 50
)

type LLMScorer interface {
	// Score never fails: transport and parse problems become degraded analyses.
	Score(ctx context.Context, text, jobDescription, filename string) models.CandidateAnalysis
	// Ready reports ErrMissingCredentials when no model key is configured.
	Ready() error
}

type ScorerOptions struct {
	// Temperature is left at DefaultScoringTemperature when nil. Zero is a
	// valid setting.
	Temperature *float32
	MaxTokens   int
	Now         func() time.Time
}

type llmScorer struct {
	client        LLMClient
	promptBuilder *PromptBuilder
	params        GenerationParams
	now           func() time.Time
}

func NewLLMScorer(client LLMClient, opts ScorerOptions) LLMScorer {
	temperature := DefaultScoringTemperature
	if opts.Temperature != nil && *opts.Temperature >= 0 {
		temperature = *opts.Temperature
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultScoringMaxTokens
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &llmScorer{
		client:        client,
		promptBuilder: NewPromptBuilder(),
		params: GenerationParams{
			Temperature: temperature,
			MaxTokens:   opts.MaxTokens,
			JSON:        true,
		},
		now: opts.Now,
	}
}

type analysisPayload struct {
	CandidateName  string                  `json:"candidate_name"`
	OverallScore   float64                 `json:"overall_score"`
	DetailedScores map[string]scorePayload `json:"detailed_scores"`
	Strengths      []string                `json:"strengths"`
	Weaknesses     []string                `json:"weaknesses"`
	Recommendation models.Recommendation   `json:"recommendation"`
	Summary        string                  `json:"summary"`
}

type scorePayload struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Ready implements LLMScorer.
func (s *llmScorer) Ready() error {
	if s.client == nil || !s.client.HasCredentials() {
		return ErrMissingCredentials
	}
	return nil
}

// Score implements LLMScorer.
func (s *llmScorer) Score(ctx context.Context, text, jobDescription, filename string) models.CandidateAnalysis {
	prompt := s.promptBuilder.BuildProfileAnalysisPrompt(jobDescription, text)
	log.Printf("📝 Analysis prompt for %s: %d characters\n", filename, len(prompt))

	var analysis models.CandidateAnalysis
	response, err := s.client.GenerateText(ctx, prompt, s.params)
	if err != nil {
		log.Printf("❌ Scoring failed for %s: %v\n", filename, err)
		analysis = FailedAnalysis(err)
	} else if parsed, perr := parseAnalysis(response); perr != nil {
		log.Printf("⚠️  Could not parse analysis for %s: %v\n", filename, perr)
		analysis = unparsedAnalysis()
	} else {
		analysis = parsed
	}

	analysis.Filename = filename
	analysis.AnalyzedAt = s.now()
	return analysis
}

// FailedAnalysis is the result for a document whose scoring could not run.
func FailedAnalysis(cause error) models.CandidateAnalysis {
	return models.CandidateAnalysis{
		CandidateName:  "Analysis error",
		OverallScore:   0,
		DetailedScores: models.UniformScores(0, "Error during analysis"),
		Strengths:      []string{},
		Weaknesses:     []string{"Technical error during analysis"},
		Recommendation: models.RecommendationNotRecommended,
		Summary:        fmt.Sprintf("Error during analysis: %v", cause),
		Failed:         true,
	}
}

func unparsedAnalysis() models.CandidateAnalysis {
	return models.CandidateAnalysis{
		CandidateName:  "Name not detected",
		OverallScore:   neutralScore,
		DetailedScores: models.UniformScores(neutralScore, "Analysis failed: model response could not be parsed"),
		Strengths:      []string{"Incomplete analysis"},
		Weaknesses:     []string{"The profile could not be analyzed correctly"},
		Recommendation: models.RecommendationNotRecommended,
		Summary:        "Error while parsing the automatic profile analysis.",
	}
}

func parseAnalysis(response string) (models.CandidateAnalysis, error) {
	raw := []byte(extractJSON(response))

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.CandidateAnalysis{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if err := candidateAnalysisSchema.Validate(doc); err != nil {
		return models.CandidateAnalysis{}, fmt.Errorf("response does not match schema: %w", err)
	}

	var payload analysisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.CandidateAnalysis{}, fmt.Errorf("failed to decode analysis: %w", err)
	}

	scores := make(map[models.ScoreCategory]models.DetailedScore, len(models.ScoreCategories))
	for _, category := range models.ScoreCategories {
		detail := payload.DetailedScores[string(category)]
		scores[category] = models.DetailedScore{
			Score:       roundScore(detail.Score),
			Explanation: detail.Explanation,
		}
	}

	return models.CandidateAnalysis{
		CandidateName:  payload.CandidateName,
		OverallScore:   roundScore(payload.OverallScore),
		DetailedScores: scores,
		Strengths:      nonNil(payload.Strengths),
		Weaknesses:     nonNil(payload.Weaknesses),
		Recommendation: payload.Recommendation,
		Summary:        payload.Summary,
	}, nil
}

// extractJSON strips markdown fences and keeps the outermost object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func roundScore(v float64) int {
	return int(math.Round(v))
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
