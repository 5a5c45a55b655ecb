package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
)

func TestPrintRanking(t *testing.T) {
	top := models.CandidateAnalysis{
		Filename:       "sarah.pdf",
		CandidateName:  "Sarah Chen",
		OverallScore:   88,
		Recommendation: models.RecommendationHighlyRecommended,
		Summary:        "Strong match.",
		Strengths:      []string{"React"},
	}
	failed := models.CandidateAnalysis{
		Filename:       "broken.pdf",
		CandidateName:  "Analysis error",
		Recommendation: models.RecommendationNotRecommended,
		Failed:         true,
	}
	result := &models.BatchResult{
		RunID:         "run-1",
		TotalAnalyzed: 2,
		TopCandidates: []models.CandidateAnalysis{top, failed},
		AllCandidates: []models.CandidateAnalysis{top, failed},
	}

	var out bytes.Buffer
	printRanking(&out, result)

	text := out.String()
	assert.Contains(t, text, "Run run-1: 2 profile(s) analyzed")
	assert.Contains(t, text, "Sarah Chen")
	assert.Contains(t, text, "Analysis error (failed)")
	assert.Contains(t, text, "+ React")
	assert.Contains(t, text, "RECOMMENDATION")
	assert.Contains(t, text, "1*")
	assert.Contains(t, text, "HIGHLY_RECOMMENDED")
}

func TestReadJobDescription(t *testing.T) {
	t.Cleanup(func() { analyzeJob, analyzeJobFile = "", "" })

	analyzeJob = "inline job"
	job, err := readJobDescription()
	require.NoError(t, err)
	assert.Equal(t, "inline job", job)

	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("job from file"), 0o644))
	analyzeJob, analyzeJobFile = "", path
	job, err = readJobDescription()
	require.NoError(t, err)
	assert.Equal(t, "job from file", job)

	analyzeJobFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = readJobDescription()
	assert.Error(t, err)
}
