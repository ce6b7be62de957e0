package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/utils"
)

// Sort modes accepted by ProductRepo.List.
const (
	SortLatest    = "latest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// DefaultPageSize is used when a filter does not set Limit.
const DefaultPageSize = 12

// ProductFilter selects a page of the catalog. Zero values mean "no filter".
type ProductFilter struct {
	Page               int
	Limit              int
	CategorySlug       string
	MinPrice           *float64
	MaxPrice           *float64
	Sort               string
	OnlyNew            bool
	SaleType           models.SaleType
	Manufacturer       string
	Status             models.ProductStatus
	Search             string
	IncludeUnpublished bool
}

// ProductPage is one page of a filtered listing.
type ProductPage struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// productColumns lists the columns written by Update.
var productColumns = []string{
	"Name", "Description", "Price", "PriceIsFrom", "CategoryID", "Status", "Quantity",
	"IsPublished", "IsFeatured", "IsNew", "SKU", "Weight", "Dimensions", "Manufacturer",
	"MetaTitle", "MetaDescription", "SaleType", "UpdatedAt",
}

// ProductRepo is the data access layer for products and their images.
type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

type condition struct {
	clause string
	args   []interface{}
}

// whereBuilder collects bound conditions that are joined with AND.
type whereBuilder struct {
	conditions []condition
}

func (w *whereBuilder) add(clause string, args ...interface{}) {
	w.conditions = append(w.conditions, condition{clause: clause, args: args})
}

func (w *whereBuilder) apply(query *gorm.DB) *gorm.DB {
	for _, cond := range w.conditions {
		query = query.Where(cond.clause, cond.args...)
	}
	return query
}

func buildWhere(f ProductFilter) *whereBuilder {
	w := &whereBuilder{}

	if !f.IncludeUnpublished {
		w.add("products.is_published = ?", true)
	}
	if f.CategorySlug != "" && f.CategorySlug != "all" {
		w.add("categories.slug = ?", f.CategorySlug)
	}
	if f.MinPrice != nil {
		w.add("products.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add("products.price <= ?", *f.MaxPrice)
	}
	if f.OnlyNew {
		w.add("products.is_new = ?", true)
	}
	if f.SaleType.Valid() {
		w.add("products.sale_type = ?", string(f.SaleType))
	}
	if f.Status.Valid() {
		w.add("products.status = ?", string(f.Status))
	}
	if m := strings.TrimSpace(f.Manufacturer); m != "" {
		w.add("products.manufacturer = ?", m)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		w.add(`(LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\' `+
			`OR LOWER(products.sku) LIKE ? ESCAPE '\' OR LOWER(products.manufacturer) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern)
	}

	return w
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func orderFor(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "products.price ASC, products.id ASC"
	case SortPriceDesc:
		return "products.price DESC, products.id DESC"
	default:
		return "products.created_at DESC, products.id DESC"
	}
}

func (r *ProductRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

func withRelations(query *gorm.DB) *gorm.DB {
	return query.Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC, id ASC")
		})
}

// List returns one page of products matching f together with the total match count.
// Images for the whole page are fetched in a single batched query.
func (r *ProductRepo) List(ctx context.Context, f ProductFilter) (*ProductPage, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	where := buildWhere(f)

	var total int64
	if err := where.apply(r.joined(ctx)).Count(&total).Error; err != nil {
		return nil, err
	}

	page := &ProductPage{
		Products:   []models.Product{},
		Total:      total,
		TotalPages: utils.TotalPages(total, f.Limit),
	}
	if f.Page > page.TotalPages {
		return page, nil
	}

	products := []models.Product{}
	if err := withRelations(where.apply(r.joined(ctx))).
		Select("products.*").
		Order(orderFor(f.Sort)).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	prepare(products)
	page.Products = products

	return page, nil
}

// Search returns published products whose name, description, sku or manufacturer
// contains q, newest first.
func (r *ProductRepo) Search(ctx context.Context, q string, limit int) ([]models.Product, error) {
	products := []models.Product{}
	where := buildWhere(ProductFilter{Search: q})
	if err := withRelations(where.apply(r.joined(ctx))).
		Select("products.*").
		Order(orderFor(SortLatest)).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	prepare(products)
	return products, nil
}

// Manufacturers returns the distinct manufacturers of published products.
func (r *ProductRepo) Manufacturers(ctx context.Context) ([]string, error) {
	manufacturers := []string{}
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_published = ? AND manufacturer IS NOT NULL AND manufacturer <> ''", true).
		Distinct("manufacturer").
		Order("manufacturer ASC").
		Pluck("manufacturer", &manufacturers).Error
	return manufacturers, err
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return findProduct(r.db.WithContext(ctx), "products.id = ?", id)
}

func (r *ProductRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return findProduct(r.db.WithContext(ctx), "products.slug = ?", slug)
}

func findProduct(db *gorm.DB, query string, arg interface{}) (*models.Product, error) {
	var product models.Product
	if err := withRelations(db).First(&product, query, arg).Error; err != nil {
		return nil, translate(err)
	}
	prepareOne(&product)
	return &product, nil
}

// Create inserts the product and its ordered images in one transaction.
// The first image becomes the product's imageUrl.
func (r *ProductRepo) Create(ctx context.Context, product *models.Product, images []string) (*models.Product, error) {
	var created *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, product.CategoryID); err != nil {
			return err
		}

		slug, err := uniqueSlug(tx, &models.Product{})
		if err != nil {
			return err
		}
		product.ID = 0
		product.Slug = slug
		product.ImageURL = firstImage(images)
		product.Images = buildImages(0, images)

		if err := tx.Create(product).Error; err != nil {
			return err
		}

		created, err = findProduct(tx, "products.id = ?", product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites the editable columns of product id. When replaceImages is set the
// image set is deleted and re-inserted in order and imageUrl follows the new first image.
// All statements run in one transaction.
func (r *ProductRepo) Update(ctx context.Context, id uint, input *models.Product, images []string, replaceImages bool) (*models.Product, error) {
	var updated *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := ensureCategory(tx, input.CategoryID); err != nil {
			return err
		}

		columns := productColumns
		input.Images = nil
		input.Category = nil
		if replaceImages {
			input.ImageURL = firstImage(images)
			columns = append(append([]string{}, productColumns...), "ImageURL")
		}

		if err := tx.Model(&existing).Select(columns).Updates(input).Error; err != nil {
			return err
		}

		if replaceImages {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if rows := buildImages(id, images); len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}

		var err error
		updated, err = findProduct(tx, "products.id = ?", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product and its images.
func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func ensureCategory(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryMissing
	}
	return nil
}

func buildImages(productID uint, urls []string) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.ProductImage{
			URL:       url,
			ProductID: productID,
			OrderNum:  len(images),
		})
	}
	return images
}

func firstImage(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

func prepare(products []models.Product) {
	for i := range products {
		prepareOne(&products[i])
	}
}

func prepareOne(product *models.Product) {
	product.AttachCategoryRef()
	if product.Images == nil {
		product.Images = []models.ProductImage{}
	}
}

// CatalogStats summarises the catalog for the admin dashboard.
type CatalogStats struct {
	TotalProducts     int64            `json:"totalProducts"`
	PublishedProducts int64            `json:"publishedProducts"`
	TotalCategories   int64            `json:"totalCategories"`
	ProductsByStatus  map[string]int64 `json:"productsByStatus"`
}

// Stats counts products, published products, categories and products per stock status.
func (r *ProductRepo) Stats(ctx context.Context) (*CatalogStats, error) {
	db := r.db.WithContext(ctx)
	stats := &CatalogStats{ProductsByStatus: map[string]int64{}}

	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Where("is_published = ?", true).Count(&stats.PublishedProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var statusCounts []statusCount
	if err := db.Model(&models.Product{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}
	for _, sc := range statusCounts {
		stats.ProductsByStatus[sc.Status] = sc.Count
	}

	return stats, nil
}
