package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"alfredoptarigan/profile-screener/internal/bootstrap"
	"alfredoptarigan/profile-screener/internal/config"
	"alfredoptarigan/profile-screener/internal/export"
	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/services"
)

var (
	analyzeJobFile     string
	analyzeJob         string
	analyzeDir         string
	analyzeLimit       int
	analyzeEmptyPolicy string
	analyzeOutFile     string
)

func init() {
	rootCmd.Flags().StringVarP(&analyzeJobFile, "job-file", "f", "", "Path to a text file with the job description")
	rootCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Job description text")
	rootCmd.Flags().StringVarP(&analyzeDir, "dir", "d", "", "Read profiles from this local directory instead of the configured store")
	rootCmd.Flags().IntVarP(&analyzeLimit, "limit", "n", 0, "Maximum number of profiles to analyze (defaults to ANALYZER_MAX_DOCUMENTS)")
	rootCmd.Flags().StringVar(&analyzeEmptyPolicy, "empty-store-policy", "", "What to do when the store is empty: reject or mock")
	rootCmd.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Also write the ranking to this XLSX file")

	rootCmd.MarkFlagsOneRequired("job-file", "job")
	rootCmd.MarkFlagsMutuallyExclusive("job-file", "job")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	jobDescription, err := readJobDescription()
	if err != nil {
		return err
	}

	cfg := config.Load()
	if analyzeDir != "" {
		cfg.Storage.Driver = bootstrap.StorageLocal
		cfg.Storage.UploadPath = analyzeDir
	}
	if analyzeLimit > 0 {
		cfg.Analyzer.MaxDocuments = analyzeLimit
	}
	if analyzeEmptyPolicy != "" {
		cfg.Analyzer.EmptyStorePolicy = analyzeEmptyPolicy
	}

	policy, err := services.ParseEmptyStorePolicy(cfg.Analyzer.EmptyStorePolicy)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.NewObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, stopNotifier := bootstrap.NewProgressNotifier(cfg)
	defer stopNotifier()

	analyzer, err := bootstrap.NewBatchAnalyzer(ctx, cfg, notifier)
	if err != nil {
		return err
	}

	result, err := analyzer.AnalyzeStore(ctx, store, jobDescription, policy)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printRanking(cmd.OutOrStdout(), result)

	if analyzeOutFile != "" {
		data, err := export.BatchResultXLSX(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(analyzeOutFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", analyzeOutFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nRanking written to %s\n", analyzeOutFile)
	}

	return nil
}

func readJobDescription() (string, error) {
	if analyzeJob != "" {
		return analyzeJob, nil
	}

	content, err := os.ReadFile(analyzeJobFile)
	if err != nil {
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return string(content), nil
}

func printRanking(w io.Writer, result *models.BatchResult) {
	fmt.Fprintf(w, "Run %s: %d profile(s) analyzed\n\n", result.RunID, result.TotalAnalyzed)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Score", "Candidate", "Recommendation", "File"})
	table.SetAutoWrapText(false)
	for i, candidate := range result.AllCandidates {
		rank := strconv.Itoa(i + 1)
		if i < len(result.TopCandidates) {
			rank += "*"
		}
		name := candidate.CandidateName
		if candidate.Failed {
			name += " (failed)"
		}
		table.Append([]string{rank, strconv.Itoa(candidate.OverallScore), name, string(candidate.Recommendation), candidate.Filename})
	}
	table.Render()

	for i, candidate := range result.TopCandidates {
		fmt.Fprintf(w, "\n#%d %s (%d)\n", i+1, candidate.CandidateName, candidate.OverallScore)
		fmt.Fprintf(w, "  %s\n", candidate.Summary)
		if len(candidate.Strengths) > 0 {
			fmt.Fprintf(w, "  + %s\n", strings.Join(candidate.Strengths, "; "))
		}
		if len(candidate.Weaknesses) > 0 {
			fmt.Fprintf(w, "  - %s\n", strings.Join(candidate.Weaknesses, "; "))
		}
	}
}
