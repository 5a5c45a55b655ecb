package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/services"
)

type headerInspector struct{}

func (headerInspector) Inspect(data []byte) (*services.PDFInfo, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, services.ErrInvalidPDF
	}
	return &services.PDFInfo{PageCount: 1, Size: int64(len(data))}, nil
}

func TestUploadProfiles(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "alice.pdf"), []byte("%PDF-1.4 alice"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bad.pdf"), []byte("not a pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "big.pdf"), []byte("%PDF-1.4 far too large"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("ignored"), 0o644))

	store, err := services.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	summary, err := uploadProfiles(context.Background(), store, headerInspector{}, src, 16)

	require.NoError(t, err)
	assert.Equal(t, uploadSummary{Succeeded: 1, Failed: 2}, summary)

	profiles, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "alice.pdf", profiles[0].Name)
}

func TestUploadProfiles_MissingDirectory(t *testing.T) {
	store, err := services.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = uploadProfiles(context.Background(), store, headerInspector{}, filepath.Join(t.TempDir(), "missing"), 0)
	assert.Error(t, err)
}

func TestUploadCommand_AcceptsOneDirectory(t *testing.T) {
	assert.NoError(t, uploadCmd.Args(uploadCmd, []string{"./pdfs"}))
	assert.Error(t, uploadCmd.Args(uploadCmd, []string{"a", "b"}))
}
