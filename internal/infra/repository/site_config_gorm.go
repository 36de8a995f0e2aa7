package repository

import (
	"context"
	"errors"

	"boutique/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteConfigGormRepository struct {
	db *gorm.DB
}

func NewSiteConfigGormRepository(db *gorm.DB) *SiteConfigGormRepository {
	return &SiteConfigGormRepository{db: db}
}

func (r *SiteConfigGormRepository) ListAll(ctx context.Context) ([]model.SiteConfig, error) {
	var items []model.SiteConfig
	if err := r.db.WithContext(ctx).Order("key asc").Find(&items).Error; err != nil {
		return []model.SiteConfig{}, err
	}
	return items, nil
}

func (r *SiteConfigGormRepository) Get(ctx context.Context, key string) (model.SiteConfig, bool, error) {
	var c model.SiteConfig
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SiteConfig{}, false, nil
	}
	if err != nil {
		return model.SiteConfig{}, false, err
	}
	return c, true, nil
}

// Upsert : ON CONFLICT (key) DO UPDATE value.
func (r *SiteConfigGormRepository) Upsert(ctx context.Context, key string, value string) error {
	row := model.SiteConfig{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *SiteConfigGormRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.SiteConfig{}).Error
}
