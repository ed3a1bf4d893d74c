package handlers

import (
	"log"
	"net/http"
	"strconv"

	"pettouch/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandlers handles admin dashboard HTTP requests. Routes using
// these handlers must sit behind the admin middleware.
type AdminHandlers struct {
	adminService services.AdminService
}

// NewAdminHandlers creates a new admin handlers instance
func NewAdminHandlers(adminService services.AdminService) *AdminHandlers {
	return &AdminHandlers{adminService: adminService}
}

// Stats handles GET /admin/stats
func (h *AdminHandlers) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.adminService.Stats(ctx)
	if err != nil {
		log.Printf("Failed to compute admin stats: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute stats")
	}

	return c.JSON(http.StatusOK, stats)
}

// RecentUsers handles GET /admin/users
func (h *AdminHandlers) RecentUsers(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	users, err := h.adminService.RecentUsers(ctx, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list users")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

// RecentPets handles GET /admin/pets
func (h *AdminHandlers) RecentPets(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	pets, err := h.adminService.RecentPets(ctx, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list pets")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"pets": pets})
}
