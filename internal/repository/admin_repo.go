package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/workwear/internal/models"
)

// AdminRepo looks up back-office accounts.
type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).First(&admin, "email = ?", normalizeEmail(email)).Error
	if err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

// Count returns the number of stored accounts.
func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

// Save creates the account or replaces the password hash of an existing one.
func (r *AdminRepo) Save(ctx context.Context, email, passwordHash string) (*models.Admin, error) {
	admin := models.Admin{Email: normalizeEmail(email), Password: passwordHash}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password"}),
	}).Create(&admin).Error
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(ctx, admin.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
