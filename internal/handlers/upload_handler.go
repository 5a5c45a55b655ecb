package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/services"
)

const profilesField = "profiles"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type UploadHandler struct {
	store       services.ObjectStore
	inspector   services.PDFInspector
	maxFileSize int64
	maxFiles    int
	now         func() time.Time
}

func NewUploadHandler(
	store services.ObjectStore,
	inspector services.PDFInspector,
	maxFileSize int64,
	maxFiles int,
) *UploadHandler {
	return &UploadHandler{
		store:       store,
		inspector:   inspector,
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
		now:         time.Now,
	}
}

type pendingUpload struct {
	objectName   string
	originalName string
	data         []byte
	pageCount    int
}

// HandleUpload handles POST /upload-profiles. Every file is checked before
// any of them is stored.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File[profilesField]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Please upload PDF files in the 'profiles' field.",
		})
	}

	if h.maxFiles > 0 && len(files) > h.maxFiles {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Too many files. Max files per upload: %d", h.maxFiles),
		})
	}

	stamp := h.now().UnixMilli()
	pending := make([]pendingUpload, 0, len(files))
	for _, file := range files {
		upload, status, err := h.prepare(file, stamp)
		if err != nil {
			return c.Status(status).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		pending = append(pending, upload)
	}

	ctx := c.UserContext()
	responses := make([]models.UploadResponse, 0, len(pending))
	for i, upload := range pending {
		if err := h.store.Put(ctx, upload.objectName, upload.data); err != nil {
			h.cleanup(ctx, pending[:i])
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s: %v", upload.originalName, err),
			})
		}

		responses = append(responses, models.UploadResponse{
			Filename:     upload.objectName,
			OriginalName: upload.originalName,
			Size:         int64(len(upload.data)),
			PageCount:    upload.pageCount,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  fmt.Sprintf("%d profile(s) uploaded successfully", len(responses)),
		"profiles": responses,
	})
}

func (h *UploadHandler) prepare(file *multipart.FileHeader, stamp int64) (pendingUpload, int, error) {
	if !services.IsPDFName(file.Filename) {
		return pendingUpload{}, fiber.StatusBadRequest, fmt.Errorf("%s: only PDF files are accepted", file.Filename)
	}

	if file.Size > h.maxFileSize {
		return pendingUpload{}, fiber.StatusBadRequest, fmt.Errorf("%s: file too large. Max size: %d bytes", file.Filename, h.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return pendingUpload{}, fiber.StatusInternalServerError, fmt.Errorf("%s: failed to open uploaded file: %v", file.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return pendingUpload{}, fiber.StatusInternalServerError, fmt.Errorf("%s: failed to read uploaded file: %v", file.Filename, err)
	}
	if int64(len(data)) > h.maxFileSize {
		return pendingUpload{}, fiber.StatusBadRequest, fmt.Errorf("%s: file too large. Max size: %d bytes", file.Filename, h.maxFileSize)
	}

	info, err := h.inspector.Inspect(data)
	if err != nil {
		return pendingUpload{}, fiber.StatusBadRequest, fmt.Errorf("%s: %v", file.Filename, err)
	}

	return pendingUpload{
		objectName:   fmt.Sprintf("%d-%s", stamp, sanitizeFilename(file.Filename)),
		originalName: file.Filename,
		data:         data,
		pageCount:    info.PageCount,
	}, fiber.StatusOK, nil
}

func (h *UploadHandler) cleanup(ctx context.Context, stored []pendingUpload) {
	for _, upload := range stored {
		_ = h.store.Delete(ctx, upload.objectName)
	}
}

func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	for len(name) > 0 && name[0] == '.' {
		name = name[1:]
	}
	if name == "" {
		return "profile.pdf"
	}
	return name
}
