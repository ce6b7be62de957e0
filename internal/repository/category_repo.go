package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/workwear/internal/models"
	"github.com/example/workwear/internal/utils"
)

const slugAttempts = 5

// CategoryRepo is the data access layer for categories.
type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List returns every category with the number of products it holds, ordered by id.
func (r *CategoryRepo) List(ctx context.Context) ([]models.CategorySummary, error) {
	categories := []models.CategorySummary{}
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Select("categories.id, categories.name, categories.slug, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name, categories.slug").
		Order("categories.id ASC").
		Scan(&categories).Error
	return categories, err
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// Create stores a category under a fresh random slug.
func (r *CategoryRepo) Create(ctx context.Context, name string, description *string) (*models.Category, error) {
	category := models.Category{Name: name, Description: description}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, &models.Category{})
		if err != nil {
			return err
		}
		category.Slug = slug
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category and replaces its description when one is given.
// The slug stays stable so storefront links keep working.
func (r *CategoryRepo) Update(ctx context.Context, id uint, name string, description *string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		category.Name = name
		if description != nil {
			category.Description = description
		}
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CountProducts returns how many products reference the category.
func (r *CategoryRepo) CountProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// Delete removes an empty category. Categories that still hold products are refused.
func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		var count int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryHasProducts
		}

		return tx.Delete(&category).Error
	})
}

// uniqueSlug draws random slugs until one is unused in the model's table.
func uniqueSlug(tx *gorm.DB, model interface{}) (string, error) {
	for i := 0; i < slugAttempts; i++ {
		slug := utils.NewSlug()
		var count int64
		if err := tx.Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique slug after %d attempts", slugAttempts)
}
