package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alfredoptarigan/profile-screener/internal/models"
)

func TestBatchResultXLSX(t *testing.T) {
	result := &models.BatchResult{
		RunID:         "run-1",
		TotalAnalyzed: 2,
		AllCandidates: []models.CandidateAnalysis{
			{
				Filename:       "sarah.pdf",
				CandidateName:  "Sarah Chen",
				OverallScore:   88,
				DetailedScores: models.UniformScores(90, "good"),
				Strengths:      []string{"React", "Node.js"},
				Recommendation: models.RecommendationHighlyRecommended,
				Summary:        "Strong match.",
			},
			{
				Filename:       "broken.pdf",
				CandidateName:  "Analysis error",
				DetailedScores: models.UniformScores(0, "error"),
				Recommendation: models.RecommendationNotRecommended,
				Failed:         true,
			},
		},
	}

	data, err := BatchResultXLSX(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{rankingSheet}, f.GetSheetList())

	header, err := f.GetCellValue(rankingSheet, "F1")
	require.NoError(t, err)
	assert.Equal(t, "Technical Skills", header)

	rows, err := f.GetRows(rankingSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "sarah.pdf", "Sarah Chen", "88", "HIGHLY_RECOMMENDED"}, rows[1][:5])
	assert.Equal(t, "React; Node.js", rows[1][10])
	assert.Equal(t, "TRUE", rows[2][13])
}

func TestBatchResultXLSX_NilResult(t *testing.T) {
	_, err := BatchResultXLSX(nil)
	assert.Error(t, err)
}
