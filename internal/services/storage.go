package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/profile-screener/internal/models"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrInvalidObjectName = errors.New("invalid object name")
)

// ObjectStore holds uploaded candidate documents by name. List returns the
// newest objects first.
type ObjectStore interface {
	List(ctx context.Context) ([]models.ProfileInfo, error)
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

type localStore struct {
	uploadPath string
}

// NewLocalStore keeps documents as files in a single directory.
func NewLocalStore(uploadPath string) (ObjectStore, error) {
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &localStore{uploadPath: uploadPath}, nil
}

func (s *localStore) List(_ context.Context) ([]models.ProfileInfo, error) {
	entries, err := os.ReadDir(s.uploadPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	profiles := make([]models.ProfileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		profiles = append(profiles, models.ProfileInfo{
			Name:       entry.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
	}

	sortNewestFirst(profiles)
	return profiles, nil
}

func (s *localStore) Get(_ context.Context, name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *localStore) Put(_ context.Context, name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.uploadPath, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *localStore) Delete(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *localStore) path(name string) (string, error) {
	if err := validateObjectName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.uploadPath, name), nil
}

func validateObjectName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidObjectName, name)
	}
	return nil
}

func sortNewestFirst(profiles []models.ProfileInfo) {
	sort.SliceStable(profiles, func(i, j int) bool {
		if !profiles[i].UploadedAt.Equal(profiles[j].UploadedAt) {
			return profiles[i].UploadedAt.After(profiles[j].UploadedAt)
		}
		return profiles[i].Name < profiles[j].Name
	})
}

// IsPDFName reports whether an object name has a .pdf extension.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// LoadDocuments reads up to limit PDF documents from the store in listing
// order. Objects that cannot be read are skipped.
func LoadDocuments(ctx context.Context, store ObjectStore, limit, concurrency int) ([]models.Document, error) {
	listed, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var names []string
	for _, info := range listed {
		if !IsPDFName(info.Name) {
			continue
		}
		names = append(names, info.Name)
		if limit > 0 && len(names) == limit {
			break
		}
	}

	if concurrency <= 0 {
		concurrency = 4
	}

	slots := make([]models.Document, len(names))
	loaded := make([]bool, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range names {
		g.Go(func() error {
			data, err := store.Get(gctx, name)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Printf("⚠️  Skipping %s: %v\n", name, err)
				return nil
			}
			slots[i] = models.Document{Name: name, Content: data}
			loaded[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(names))
	for i := range names {
		if loaded[i] {
			docs = append(docs, slots[i])
		}
	}

	log.Printf("📥 Loaded %d of %d listed documents\n", len(docs), len(names))
	return docs, nil
}
