package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/workwear/internal/models"
)

// CompanyRepo stores the single company info row.
type CompanyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Get returns the company info, or nil when it has never been saved.
func (r *CompanyRepo) Get(ctx context.Context) (*models.CompanyInfo, error) {
	var info models.CompanyInfo
	err := r.db.WithContext(ctx).First(&info, "id = ?", models.CompanyInfoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Upsert creates the row on first save and overwrites every field afterwards.
func (r *CompanyRepo) Upsert(ctx context.Context, info *models.CompanyInfo) (*models.CompanyInfo, error) {
	info.ID = models.CompanyInfoID

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"telephone", "whatsapp", "address", "work_schedule", "email", "website", "updated_at",
		}),
	}).Create(info).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx)
}
