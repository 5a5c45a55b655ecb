package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/profile-screener/internal/bootstrap"
	"alfredoptarigan/profile-screener/internal/config"
	"alfredoptarigan/profile-screener/internal/services"
)

const defaultProfileDir = "./candidate_pdfs"

var uploadCmd = &cobra.Command{
	Use:   "upload_profiles [dir]",
	Short: "Upload every PDF in a directory to the configured profile store",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUpload,
}

type uploadSummary struct {
	Succeeded int
	Failed    int
}

func main() {
	if err := uploadCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	dir := defaultProfileDir
	if len(args) == 1 {
		dir = args[0]
	}

	log.Println("🚀 Starting profile upload...")

	// Load configuration
	cfg := config.Load()
	ctx := cmd.Context()

	store, closeStore, err := bootstrap.NewObjectStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profile storage: %w", err)
	}
	defer closeStore()

	summary, err := uploadProfiles(ctx, store, services.NewPDFInspector(), dir, cfg.Storage.MaxFileSize)
	if err != nil {
		return err
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Upload Summary:")
	log.Printf("   ✅ Successful: %d profiles", summary.Succeeded)
	log.Printf("   ❌ Failed: %d profiles", summary.Failed)
	log.Println(strings.Repeat("=", 60))

	if summary.Failed > 0 {
		log.Println("⚠️  Some profiles failed to upload. Please check the logs above.")
		return fmt.Errorf("%d profile(s) failed to upload", summary.Failed)
	}

	log.Println("✅ All profiles uploaded successfully!")
	return nil
}

func uploadProfiles(ctx context.Context, store services.ObjectStore, inspector services.PDFInspector, dir string, maxFileSize int64) (uploadSummary, error) {
	var summary uploadSummary

	entries, err := os.ReadDir(dir)
	if err != nil {
		return summary, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && services.IsPDFName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		log.Printf("⚠️  No PDF files found in %s", dir)
		return summary, nil
	}

	for _, name := range names {
		log.Printf("\n📄 Processing: %s", name)

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("   ❌ Failed to read file: %v", err)
			summary.Failed++
			continue
		}

		if maxFileSize > 0 && int64(len(data)) > maxFileSize {
			log.Printf("   ⚠️  File larger than %d bytes, skipping...", maxFileSize)
			summary.Failed++
			continue
		}

		info, err := inspector.Inspect(data)
		if err != nil {
			log.Printf("   ❌ Not a valid PDF: %v", err)
			summary.Failed++
			continue
		}

		if err := store.Put(ctx, name, data); err != nil {
			log.Printf("   ❌ Failed to upload: %v", err)
			summary.Failed++
			continue
		}

		log.Printf("   ✅ Uploaded %d pages, %d bytes", info.PageCount, len(data))
		summary.Succeeded++
	}

	return summary, nil
}
