package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/services"
)

type ProfileHandler struct {
	store services.ObjectStore
}

func NewProfileHandler(store services.ObjectStore) *ProfileHandler {
	return &ProfileHandler{
		store: store,
	}
}

// HandleList handles GET /profiles
func (h *ProfileHandler) HandleList(c *fiber.Ctx) error {
	profiles, err := h.store.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list profiles",
		})
	}

	if profiles == nil {
		profiles = []models.ProfileInfo{}
	}

	return c.JSON(models.ProfileListResponse{Profiles: profiles})
}

// HandleDelete handles DELETE /profiles/:filename
func (h *ProfileHandler) HandleDelete(c *fiber.Ctx) error {
	filename, err := url.PathUnescape(c.Params("filename"))
	if err != nil || filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid filename",
		})
	}

	if err := h.store.Delete(c.UserContext(), filename); err != nil {
		switch {
		case errors.Is(err, services.ErrObjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		case errors.Is(err, services.ErrInvalidObjectName):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid filename",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete profile",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Profile deleted successfully",
		"filename": filename,
	})
}
