package handlers

import (
	"context"
	"errors"
	"net/http"

	"pettouch/internal/common"
	"pettouch/internal/repositories"
	"pettouch/internal/services"

	"github.com/labstack/echo/v4"
)

// TagHandlers serves the public tag scan endpoint. No authentication,
// every request counts as a scan.
type TagHandlers struct {
	scanService services.ScanService
}

// NewTagHandlers creates a new tag handlers instance
func NewTagHandlers(scanService services.ScanService) *TagHandlers {
	return &TagHandlers{scanService: scanService}
}

// ScanTag handles GET /tag/:id
func (h *TagHandlers) ScanTag(c echo.Context) error {
	ctx := c.Request().Context()

	petID, err := common.ValidateUUID(c.Param("id"), "tag id")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
	}

	pet, err := h.scanService.PublicProfile(ctx, petID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPetNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
		case errors.Is(err, context.DeadlineExceeded):
			return echo.NewHTTPError(http.StatusGatewayTimeout, "Tag lookup timed out, please try again")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load tag")
		}
	}

	// Only owner-approved fields go out on the public surface
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":             pet.ID,
		"name":           pet.Name,
		"type":           pet.Type,
		"age":            pet.Age,
		"children_count": pet.ChildrenCount,
		"notes":          pet.Notes,
		"image_url":      pet.ImageURL,
	})
}
