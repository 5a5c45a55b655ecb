package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/profile-screener/internal/models"
)

const (
	TopCandidateCount          = 3
	DefaultMaxDocuments        = 10
	defaultDownloadConcurrency = 4
)

// EmptyStorePolicy decides what AnalyzeStore does when the store holds no
// documents.
type EmptyStorePolicy string

const (
	EmptyStoreReject EmptyStorePolicy = "reject"
	EmptyStoreMock   EmptyStorePolicy = "mock"
)

func ParseEmptyStorePolicy(s string) (EmptyStorePolicy, error) {
	switch EmptyStorePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case EmptyStoreReject, "":
		return EmptyStoreReject, nil
	case EmptyStoreMock:
		return EmptyStoreMock, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEmptyPolicy, s)
	}
}

type BatchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, docs []models.Document, jobDescription string) (*models.BatchResult, error)
	AnalyzeStore(ctx context.Context, store ObjectStore, jobDescription string, policy EmptyStorePolicy) (*models.BatchResult, error)
}

type AnalyzerOption func(*batchAnalyzer)

// WithPacer sets the limiter taken before each model call. It is shared by
// every batch the analyzer runs, since all of them spend the same API key.
func WithPacer(p Pacer) AnalyzerOption {
	return func(a *batchAnalyzer) {
		if p != nil {
			a.pacer = p
		}
	}
}

func WithNotifier(n ProgressNotifier) AnalyzerOption {
	return func(a *batchAnalyzer) {
		if n != nil {
			a.notifier = n
		}
	}
}

func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *batchAnalyzer) {
		if now != nil {
			a.now = now
		}
	}
}

func WithMaxDocuments(n int) AnalyzerOption {
	return func(a *batchAnalyzer) {
		if n > 0 {
			a.maxDocuments = n
		}
	}
}

func WithDownloadConcurrency(n int) AnalyzerOption {
	return func(a *batchAnalyzer) {
		if n > 0 {
			a.downloadConcurrency = n
		}
	}
}

type batchAnalyzer struct {
	extractor           TextExtractor
	scorer              LLMScorer
	pacer               Pacer
	notifier            ProgressNotifier
	now                 func() time.Time
	maxDocuments        int
	downloadConcurrency int
}

// NewBatchAnalyzer wires an extraction chain and a scorer. By default model
// calls are spaced one second apart.
func NewBatchAnalyzer(extractor TextExtractor, scorer LLMScorer, opts ...AnalyzerOption) BatchAnalyzer {
	a := &batchAnalyzer{
		extractor:           extractor,
		scorer:              scorer,
		pacer:               NewRatePacer(time.Second, 1),
		notifier:            NoopNotifier(),
		now:                 time.Now,
		maxDocuments:        DefaultMaxDocuments,
		downloadConcurrency: defaultDownloadConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *batchAnalyzer) validate(jobDescription string) error {
	if strings.TrimSpace(jobDescription) == "" {
		return ErrEmptyJobDescription
	}
	return a.scorer.Ready()
}

// AnalyzeStore loads documents from the store and analyzes them. The policy
// decides whether an empty store is an error or runs the mock dataset.
func (a *batchAnalyzer) AnalyzeStore(ctx context.Context, store ObjectStore, jobDescription string, policy EmptyStorePolicy) (*models.BatchResult, error) {
	policy, err := ParseEmptyStorePolicy(string(policy))
	if err != nil {
		return nil, err
	}
	if err := a.validate(jobDescription); err != nil {
		return nil, err
	}

	docs, err := LoadDocuments(ctx, store, a.maxDocuments, a.downloadConcurrency)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		if policy != EmptyStoreMock {
			return nil, ErrNoDocuments
		}
		log.Println("⚠️  No documents in store, analyzing mock dataset")
		docs = MockDocuments()
	}

	return a.AnalyzeBatch(ctx, docs, jobDescription)
}

// AnalyzeBatch scores every document sequentially and ranks the results.
// Input errors are returned before any document is touched; per-document
// problems are folded into that document's analysis.
func (a *batchAnalyzer) AnalyzeBatch(ctx context.Context, docs []models.Document, jobDescription string) (*models.BatchResult, error) {
	if err := a.validate(jobDescription); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	result := &models.BatchResult{
		RunID:     uuid.New().String(),
		StartedAt: a.now(),
	}
	total := len(docs)

	log.Printf("🔄 Analyzing %d documents (run %s)\n", total, result.RunID)
	a.notifier.Notify(ctx, models.BatchEvent{
		RunID:     result.RunID,
		Type:      models.EventBatchStarted,
		Total:     total,
		Timestamp: result.StartedAt,
	})

	analyses := make([]models.CandidateAnalysis, 0, total)
	for i, doc := range docs {
		if err := a.pacer.Wait(ctx); err != nil {
			log.Printf("❌ Batch %s cancelled after %d of %d documents\n", result.RunID, i, total)
			return nil, err
		}

		analysis := a.analyzeDocument(ctx, doc, jobDescription)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)

		a.notifier.Notify(ctx, models.BatchEvent{
			RunID:     result.RunID,
			Type:      models.EventDocumentCompleted,
			Filename:  doc.Name,
			Score:     analysis.OverallScore,
			Failed:    analysis.Failed,
			Index:     i + 1,
			Total:     total,
			Timestamp: a.now(),
		})
	}

	RankCandidates(analyses)

	result.TotalAnalyzed = len(analyses)
	result.AllCandidates = analyses
	result.TopCandidates = analyses[:min(TopCandidateCount, len(analyses))]
	result.CompletedAt = a.now()

	a.notifier.Notify(ctx, models.BatchEvent{
		RunID:     result.RunID,
		Type:      models.EventBatchCompleted,
		Total:     result.TotalAnalyzed,
		Timestamp: result.CompletedAt,
	})
	log.Printf("✅ Run %s complete: %d analyzed\n", result.RunID, result.TotalAnalyzed)

	return result, nil
}

func (a *batchAnalyzer) analyzeDocument(ctx context.Context, doc models.Document, jobDescription string) (analysis models.CandidateAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Unexpected failure analyzing %s: %v\n", doc.Name, r)
			analysis = FailedAnalysis(fmt.Errorf("unexpected failure: %v", r))
			analysis.Filename = doc.Name
			analysis.AnalyzedAt = a.now()
		}
	}()

	extracted := a.extractor.Extract(ctx, doc)
	return a.scorer.Score(ctx, extracted.Text, jobDescription, doc.Name)
}

// RankCandidates sorts by overall score, highest first. Equal scores keep
// their input order.
func RankCandidates(analyses []models.CandidateAnalysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].OverallScore > analyses[j].OverallScore
	})
}
