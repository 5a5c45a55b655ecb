package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/profile-screener/internal/export"
	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyzeHandler struct {
	analyzer      services.BatchAnalyzer
	store         services.ObjectStore
	defaultPolicy services.EmptyStorePolicy
}

func NewAnalyzeHandler(
	analyzer services.BatchAnalyzer,
	store services.ObjectStore,
	defaultPolicy services.EmptyStorePolicy,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:      analyzer,
		store:         store,
		defaultPolicy: defaultPolicy,
	}
}

// HandleAnalyze handles POST /analyze-profiles
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid request: %v", err),
		})
	}

	policy := h.defaultPolicy
	if req.EmptyStorePolicy != "" {
		policy = services.EmptyStorePolicy(req.EmptyStorePolicy)
	}

	result, err := h.analyzer.AnalyzeStore(c.UserContext(), h.store, req.JobDescription, policy)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		log.Printf("❌ Analysis failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze profiles",
		})
	}

	if c.Query("format") == "xlsx" {
		data, err := export.BatchResultXLSX(result)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to export ranking",
			})
		}

		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ranking-%s.xlsx"`, result.RunID))
		return c.Send(data)
	}

	return c.JSON(result)
}
