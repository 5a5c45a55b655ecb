package services

import (
	"context"
	"strings"

	"alfredoptarigan/profile-screener/internal/models"
)

const (
	heuristicMinWords = 10
	heuristicMinChars = 100
)

type heuristicScanStrategy struct{}

// NewHeuristicScanStrategy walks the raw bytes and keeps readable runs. It
// declines rather than return noise.
func NewHeuristicScanStrategy() ExtractionStrategy {
	return &heuristicScanStrategy{}
}

func (s *heuristicScanStrategy) Name() string {
	return StageHeuristic
}

func (s *heuristicScanStrategy) TryExtract(_ context.Context, doc models.Document) (string, bool) {
	text, words := scanReadableRuns(doc.Content)
	if words > heuristicMinWords && len([]rune(text)) > heuristicMinChars {
		return text, true
	}
	return "", false
}

// scanReadableRuns returns the cleaned readable text and the number of words
// longer than one character.
func scanReadableRuns(raw []byte) (string, int) {
	var text strings.Builder
	var word strings.Builder
	words := 0
	lastSpace := true

	flushWord := func() {
		if len([]rune(word.String())) > 1 {
			words++
		}
		word.Reset()
	}

	for _, b := range raw {
		r := rune(b)
		if !isReadable(r) {
			flushWord()
			if text.Len() > 0 && !lastSpace {
				text.WriteByte(' ')
				lastSpace = true
			}
			continue
		}

		if isWordRune(r) {
			word.WriteRune(r)
		} else {
			flushWord()
		}

		text.WriteRune(r)
		lastSpace = isSpaceByte(b)
	}
	flushWord()

	return collapseWhitespace(text.String()), words
}

// isWordRune covers ASCII letters and digits, Latin-1 accented lowercase
// letters, and the hyphen.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0xE0 && r <= 0xFF && r != 0xF7:
		return true
	case r == '-':
		return true
	}
	return false
}

func isReadable(r rune) bool {
	if isWordRune(r) || isSpaceByte(byte(r)) {
		return true
	}
	return strings.ContainsRune(".,;:!?@()", r)
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v', 0xA0:
		return true
	}
	return false
}
