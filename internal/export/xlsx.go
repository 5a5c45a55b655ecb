package export

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/profile-screener/internal/models"
)

const rankingSheet = "Ranking"

// BatchResultXLSX renders a ranked batch as a single-sheet workbook, one row
// per candidate in ranking order.
func BatchResultXLSX(result *models.BatchResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("xlsx export: nil batch result")
	}

	f := excelize.NewFile()
	defer f.Close()

	if index, _ := f.GetSheetIndex(rankingSheet); index == -1 {
		if _, err := f.NewSheet(rankingSheet); err != nil {
			return nil, fmt.Errorf("xlsx sheet: %w", err)
		}
	}
	activeIndex, _ := f.GetSheetIndex(rankingSheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Rank", "File", "Candidate", "Overall Score", "Recommendation"}
	for _, category := range models.ScoreCategories {
		headers = append(headers, categoryTitle(category))
	}
	headers = append(headers, "Strengths", "Weaknesses", "Summary", "Failed")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(rankingSheet, cell, h)
	}

	for i, candidate := range result.AllCandidates {
		row := i + 2
		col := 1
		write := func(v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(rankingSheet, cell, v)
			col++
		}

		write(i + 1)
		write(candidate.Filename)
		write(candidate.CandidateName)
		write(candidate.OverallScore)
		write(string(candidate.Recommendation))
		for _, category := range models.ScoreCategories {
			write(candidate.DetailedScores[category].Score)
		}
		write(strings.Join(candidate.Strengths, "; "))
		write(strings.Join(candidate.Weaknesses, "; "))
		write(candidate.Summary)
		write(candidate.Failed)
	}

	_ = f.SetColWidth(rankingSheet, "A", "A", 6)
	_ = f.SetColWidth(rankingSheet, "B", "C", 28)
	_ = f.SetColWidth(rankingSheet, "D", "J", 16)
	_ = f.SetColWidth(rankingSheet, "K", "M", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	log.Printf("📄 Exported run %s: %d rows\n", result.RunID, len(result.AllCandidates))
	return buf.Bytes(), nil
}

// categoryTitle turns "technical_skills" into "Technical Skills".
func categoryTitle(category models.ScoreCategory) string {
	words := strings.Split(string(category), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
