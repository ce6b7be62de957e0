package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/repository"
	"github.com/example/workwear/internal/utils"
)

// CatalogHandler manages category endpoints.
type CatalogHandler struct {
	categories *repository.CategoryRepo
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(categories *repository.CategoryRepo) *CatalogHandler {
	return &CatalogHandler{categories: categories}
}

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,notblank" msg:"Название категории обязательно"`
	Description *string `json:"description" validate:"omitempty,max=2000" msg:"Описание категории слишком длинное"`
}

func parseCategoryRequest(c *fiber.Ctx) (*categoryRequest, error) {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Некорректный формат запроса")
	}
	req.Name = strings.TrimSpace(req.Name)
	if msg := utils.FirstValidationError(&req); msg != "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return &req, nil
}

// ListCategories returns every category with its product count.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return serverError("Catalog", err, "Ошибка при загрузке категорий")
	}
	return c.JSON(categories)
}

// GetCategory returns a single category by slug.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.categories.FindBySlug(c.UserContext(), c.Params("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Категория не найдена")
	}
	if err != nil {
		return serverError("Catalog", err, "Ошибка при загрузке категории")
	}
	return c.JSON(category)
}

// CreateCategory persists a new category under a generated slug.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	req, err := parseCategoryRequest(c)
	if err != nil {
		return err
	}

	category, err := h.categories.Create(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return serverError("Catalog", err, "Ошибка при создании категории")
	}

	return c.JSON(models.CategorySummary{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		ProductCount: 0,
	})
}

// UpdateCategory renames an existing category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := parseCategoryRequest(c)
	if err != nil {
		return err
	}

	category, err := h.categories.Update(c.UserContext(), id, req.Name, req.Description)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Категория не найдена")
	}
	if err != nil {
		return serverError("Catalog", err, "Ошибка при обновлении категории")
	}

	count, err := h.categories.CountProducts(c.UserContext(), id)
	if err != nil {
		return serverError("Catalog", err, "Ошибка при обновлении категории")
	}

	return c.JSON(models.CategorySummary{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		ProductCount: count,
	})
}

// DeleteCategory removes a category that holds no products.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	err = h.categories.Delete(c.UserContext(), id)
	switch {
	case errors.Is(err, repository.ErrCategoryHasProducts):
		return fiber.NewError(fiber.StatusBadRequest, "Нельзя удалить категорию, содержащую товары")
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Категория не найдена")
	case err != nil:
		return serverError("Catalog", err, "Ошибка при удалении категории")
	}

	return c.JSON(fiber.Map{"success": true})
}
