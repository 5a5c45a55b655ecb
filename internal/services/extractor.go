package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/profile-screener/internal/models"
)

const (
	DefaultMinExtractedChars = 100
	DefaultMaxExtractedChars = 5000
)

// ExtractionStrategy is one stage of the extraction chain. A stage returns
// ok=false when it has nothing usable to offer.
type ExtractionStrategy interface {
	Name() string
	TryExtract(ctx context.Context, doc models.Document) (text string, ok bool)
}

type TextExtractor interface {
	Extract(ctx context.Context, doc models.Document) models.ExtractedText
}

type ExtractorOptions struct {
	MinChars int
	MaxChars int
}

type textExtractor struct {
	strategies []ExtractionStrategy
	fallback   ExtractionStrategy
	minChars   int
	maxChars   int
}

// NewTextExtractor builds a chain that tries each strategy in order. The
// synthetic profile stage always runs last when every strategy declines.
func NewTextExtractor(opts ExtractorOptions, strategies ...ExtractionStrategy) TextExtractor {
	if opts.MinChars <= 0 {
		opts.MinChars = DefaultMinExtractedChars
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxExtractedChars
	}

	return &textExtractor{
		strategies: strategies,
		fallback:   NewSyntheticProfileStrategy(),
		minChars:   opts.MinChars,
		maxChars:   opts.MaxChars,
	}
}

// Extract implements TextExtractor. It never fails and never returns empty text.
func (e *textExtractor) Extract(ctx context.Context, doc models.Document) models.ExtractedText {
	for _, strategy := range e.strategies {
		text, ok := e.try(ctx, strategy, doc)
		if !ok {
			continue
		}

		usable := utf8.RuneCountInString(strings.TrimSpace(text))
		if usable < e.minChars {
			log.Printf("⚠️  %s produced %d characters for %s, trying next stage\n", strategy.Name(), usable, doc.Name)
			continue
		}

		log.Printf("📄 Extracted %d characters from %s using %s\n", usable, doc.Name, strategy.Name())
		return e.result(doc.Name, text, strategy.Name())
	}

	text, _ := e.fallback.TryExtract(ctx, doc)
	log.Printf("⚠️  No readable text in %s, using synthetic profile\n", doc.Name)
	return e.result(doc.Name, text, e.fallback.Name())
}

func (e *textExtractor) try(ctx context.Context, strategy ExtractionStrategy, doc models.Document) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ %s panicked on %s: %v\n", strategy.Name(), doc.Name, r)
			text, ok = "", false
		}
	}()

	return strategy.TryExtract(ctx, doc)
}

func (e *textExtractor) result(name, text, method string) models.ExtractedText {
	text = truncateRunes(strings.TrimSpace(text), e.maxChars)
	return models.ExtractedText{
		SourceDocument: name,
		Text:           text,
		Length:         utf8.RuneCountInString(text),
		Method:         method,
	}
}

// BuildExtractionChain maps configured stage names to strategies. The remote
// stage is dropped when no extraction service is configured.
func BuildExtractionChain(names []string, remote ExtractionStrategy) ([]ExtractionStrategy, error) {
	var chain []ExtractionStrategy
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case StageRemote:
			if remote != nil {
				chain = append(chain, remote)
			}
		case StagePattern:
			chain = append(chain, NewPatternScanStrategy())
		case StageHeuristic:
			chain = append(chain, NewHeuristicScanStrategy())
		case StageSynthetic:
			chain = append(chain, NewSyntheticProfileStrategy())
		default:
			return nil, fmt.Errorf("unknown extraction stage: %q", name)
		}
	}
	return chain, nil
}

const (
	StageRemote    = "remote"
	StagePattern   = "pattern"
	StageHeuristic = "heuristic"
	StageSynthetic = "synthetic"
)

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// collapseWhitespace joins all whitespace runs into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// latin1 maps every byte to the code point of the same value, so byte-level
// scans see one rune per input byte.
func latin1(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
