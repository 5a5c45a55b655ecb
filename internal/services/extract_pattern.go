package services

import (
	"context"
	"regexp"
	"strings"

	"alfredoptarigan/profile-screener/internal/models"
)

var (
	parenLiteralRegex = regexp.MustCompile(`\(([^)]+)\)`)
	textArrayRegex    = regexp.MustCompile(`\[([^\]]+)\]\s*TJ`)
	textObjectRegex   = regexp.MustCompile(`(?s)BT(.*?)ET`)
	escapedBreakRegex = regexp.MustCompile(`\\[nr]`)
	letterRegex       = regexp.MustCompile(`[a-zA-Z]`)
)

type patternScanStrategy struct{}

// NewPatternScanStrategy scans a page-description document for string
// literals: parenthesized runs, TJ arrays, and literals inside BT/ET text
// objects.
func NewPatternScanStrategy() ExtractionStrategy {
	return &patternScanStrategy{}
}

func (s *patternScanStrategy) Name() string {
	return StagePattern
}

func (s *patternScanStrategy) TryExtract(_ context.Context, doc models.Document) (string, bool) {
	text := scanTextLiterals(doc.Content)
	return text, text != ""
}

func scanTextLiterals(raw []byte) string {
	source := latin1(raw)
	var matches []string

	for _, m := range parenLiteralRegex.FindAllStringSubmatch(source, -1) {
		matches = appendLiteral(matches, m[1])
	}

	for _, m := range textArrayRegex.FindAllStringSubmatch(source, -1) {
		literal := strings.NewReplacer("(", "", ")", "").Replace(m[1])
		matches = appendLiteral(matches, literal)
	}

	for _, block := range textObjectRegex.FindAllStringSubmatch(source, -1) {
		for _, m := range parenLiteralRegex.FindAllStringSubmatch(block[1], -1) {
			matches = appendLiteral(matches, m[1])
		}
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.TrimSpace(m) == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(escapedBreakRegex.ReplaceAllString(m, " ")))
	}

	return collapseWhitespace(strings.Join(parts, " "))
}

func appendLiteral(matches []string, literal string) []string {
	if len([]rune(literal)) > 2 && letterRegex.MatchString(literal) {
		return append(matches, literal)
	}
	return matches
}
