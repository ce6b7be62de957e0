package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/middleware"
	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/repository"
	"github.com/example/workwear/internal/utils"
)

// ProductHandler manages product CRUD and the catalog listing.
type ProductHandler struct {
	cfg      *config.Config
	products *repository.ProductRepo
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(cfg *config.Config, products *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{cfg: cfg, products: products}
}

// ListProducts returns one page of products with optional filters.
// Unpublished products are only visible to admins that ask for them.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c, repository.DefaultPageSize)

	filter := repository.ProductFilter{
		Page:         pg.Page,
		Limit:        pg.Limit,
		CategorySlug: strings.TrimSpace(c.Query("category")),
		MinPrice:     parseFloatQuery(c, "minPrice"),
		MaxPrice:     parseFloatQuery(c, "maxPrice"),
		Sort:         c.Query("sort", repository.SortLatest),
		OnlyNew:      c.QueryBool("isNew", false),
		SaleType:     models.SaleType(c.Query("saleType")),
		Manufacturer: c.Query("manufacturer"),
		Status:       models.ProductStatus(c.Query("status")),
		Search:       c.Query("search"),
	}

	if c.QueryBool("includeUnpublished", false) && middleware.IsAdmin(c, h.cfg) {
		filter.IncludeUnpublished = true
	}

	page, err := h.products.List(c.UserContext(), filter)
	if err != nil {
		return serverError("Products", err, "Ошибка при загрузке товаров")
	}

	return c.JSON(page)
}

// GetProduct loads a product by id for the admin editor.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.products.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
	}
	if err != nil {
		return serverError("Products", err, "Ошибка при загрузке товара")
	}

	return c.JSON(product)
}

// GetProductBySlug loads a published product for the storefront. Admins also see drafts.
func (h *ProductHandler) GetProductBySlug(c *fiber.Ctx) error {
	product, err := h.products.FindBySlug(c.UserContext(), c.Params("slug"))
	if err == nil && !product.IsPublished && !middleware.IsAdmin(c, h.cfg) {
		err = repository.ErrNotFound
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
	}
	if err != nil {
		return serverError("Products", err, "Ошибка при загрузке товара")
	}

	return c.JSON(product)
}

type productRequest struct {
	Name            string             `json:"name" validate:"required,notblank" msg:"Название, цена и категория обязательны"`
	Description     *string            `json:"description"`
	Price           *float64           `json:"price" validate:"required,gt=0" msg:"Название, цена и категория обязательны"`
	PriceIsFrom     *bool              `json:"priceIsFrom"`
	Images          *[]string          `json:"images"`
	CategoryID      uint               `json:"categoryId" validate:"required" msg:"Название, цена и категория обязательны"`
	Status          *string            `json:"status" validate:"omitempty,oneof=IN_STOCK OUT_OF_STOCK LOW_STOCK PREORDER DISCONTINUED" msg:"Некорректный статус товара"`
	Quantity        *int               `json:"quantity" validate:"omitempty,gte=0" msg:"Количество не может быть отрицательным"`
	IsPublished     *bool              `json:"isPublished"`
	IsFeatured      *bool              `json:"isFeatured"`
	IsNew           *bool              `json:"isNew"`
	SKU             *string            `json:"sku"`
	Weight          *float64           `json:"weight" validate:"omitempty,gte=0" msg:"Вес не может быть отрицательным"`
	Dimensions      *models.Dimensions `json:"dimensions"`
	Manufacturer    *string            `json:"manufacturer"`
	MetaTitle       *string            `json:"metaTitle"`
	MetaDescription *string            `json:"metaDescription"`
	SaleType        *string            `json:"saleType" validate:"omitempty,oneof=RETAIL_ONLY WHOLESALE_ONLY BOTH" msg:"Некорректный тип продажи"`
}

func parseProductRequest(c *fiber.Ctx) (*productRequest, error) {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Некорректный формат запроса")
	}
	req.Name = strings.TrimSpace(req.Name)
	if msg := utils.FirstValidationError(&req); msg != "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return &req, nil
}

// apply copies the request onto product. Optional fields left out of the
// request keep the value already on product.
func (r *productRequest) apply(product *models.Product) {
	product.Name = r.Name
	product.Price = *r.Price
	product.CategoryID = r.CategoryID

	if r.Description != nil {
		product.Description = r.Description
	}
	if r.PriceIsFrom != nil {
		product.PriceIsFrom = *r.PriceIsFrom
	}
	if r.Status != nil {
		product.Status = models.ProductStatus(*r.Status)
	}
	if r.Quantity != nil {
		product.Quantity = r.Quantity
	}
	if r.IsPublished != nil {
		product.IsPublished = *r.IsPublished
	}
	if r.IsFeatured != nil {
		product.IsFeatured = *r.IsFeatured
	}
	if r.IsNew != nil {
		product.IsNew = *r.IsNew
	}
	if r.SKU != nil {
		product.SKU = r.SKU
	}
	if r.Weight != nil {
		product.Weight = r.Weight
	}
	if r.Dimensions != nil {
		dimensions := datatypes.NewJSONType(*r.Dimensions)
		product.Dimensions = &dimensions
	}
	if r.Manufacturer != nil {
		product.Manufacturer = r.Manufacturer
	}
	if r.MetaTitle != nil {
		product.MetaTitle = r.MetaTitle
	}
	if r.MetaDescription != nil {
		product.MetaDescription = r.MetaDescription
	}
	if r.SaleType != nil {
		product.SaleType = models.SaleType(*r.SaleType)
	}
}

func (r *productRequest) imageList() []string {
	if r.Images == nil {
		return nil
	}
	images := make([]string, 0, len(*r.Images))
	for _, url := range *r.Images {
		if url = strings.TrimSpace(url); url != "" {
			images = append(images, url)
		}
	}
	return images
}

// CreateProduct stores a new product with its images.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	req, err := parseProductRequest(c)
	if err != nil {
		return err
	}

	product := &models.Product{
		Status:      models.StatusInStock,
		SaleType:    models.SaleBoth,
		IsPublished: true,
		IsNew:       true,
	}
	req.apply(product)

	created, err := h.products.Create(c.UserContext(), product, req.imageList())
	if errors.Is(err, repository.ErrCategoryMissing) {
		return fiber.NewError(fiber.StatusBadRequest, "Категория не найдена")
	}
	if err != nil {
		return serverError("Products", err, "Ошибка при создании товара")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateProduct overwrites a product. The image list is replaced only when the
// request carries an images field.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := parseProductRequest(c)
	if err != nil {
		return err
	}

	existing, err := h.products.FindByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
	}
	if err != nil {
		return serverError("Products", err, "Ошибка при обновлении товара")
	}
	req.apply(existing)

	updated, err := h.products.Update(c.UserContext(), id, existing, req.imageList(), req.Images != nil)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
	case errors.Is(err, repository.ErrCategoryMissing):
		return fiber.NewError(fiber.StatusBadRequest, "Категория не найдена")
	case err != nil:
		return serverError("Products", err, "Ошибка при обновлении товара")
	}

	return c.JSON(updated)
}

// DeleteProduct removes a product and its images.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	err = h.products.Delete(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Товар не найден")
	}
	if err != nil {
		return serverError("Products", err, "Ошибка при удалении товара")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseFloatQuery(c *fiber.Ctx, key string) *float64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}
