package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/repository"
	"github.com/example/workwear/internal/utils"
)

const (
	defaultSearchLimit = 8
	minSearchLength    = 2
)

// SearchHandler serves the storefront search box and its filter lists.
type SearchHandler struct {
	products *repository.ProductRepo
}

// NewSearchHandler constructs SearchHandler.
func NewSearchHandler(products *repository.ProductRepo) *SearchHandler {
	return &SearchHandler{products: products}
}

// Search returns published products matching q. Queries shorter than two
// characters return an empty list.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(q) < minSearchLength {
		return c.JSON([]models.Product{})
	}

	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > utils.MaxPageSize {
		limit = utils.MaxPageSize
	}

	products, err := h.products.Search(c.UserContext(), q, limit)
	if err != nil {
		return serverError("Search", err, "Ошибка при поиске товаров")
	}
	return c.JSON(products)
}

// Manufacturers lists the distinct manufacturers of published products.
func (h *SearchHandler) Manufacturers(c *fiber.Ctx) error {
	manufacturers, err := h.products.Manufacturers(c.UserContext())
	if err != nil {
		return serverError("Search", err, "Ошибка при загрузке производителей")
	}
	return c.JSON(manufacturers)
}
