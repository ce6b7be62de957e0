package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/workwear/internal/repository"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	products *repository.ProductRepo
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(products *repository.ProductRepo) *AdminHandler {
	return &AdminHandler{products: products}
}

// DashboardStats returns aggregate catalog statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.products.Stats(c.UserContext())
	if err != nil {
		return serverError("Admin", err, "Ошибка при загрузке статистики")
	}
	return c.JSON(stats)
}
