package repository

import (
	"context"
	"errors"
	"strings"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"

	"gorm.io/gorm"
)

type DiscountGormRepository struct {
	db *gorm.DB
}

func NewDiscountGormRepository(db *gorm.DB) *DiscountGormRepository {
	return &DiscountGormRepository{db: db}
}

func (r *DiscountGormRepository) List(ctx context.Context, page int, limit int) ([]model.Discount, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Discount{}).Count(&total).Error; err != nil {
		return []model.Discount{}, 0, err
	}

	var items []model.Discount
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Discount{}, 0, err
	}

	return items, total, nil
}

func (r *DiscountGormRepository) FindByID(ctx context.Context, id int64) (model.Discount, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Discount{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Discount{}, err
	}
	return d, nil
}

func (r *DiscountGormRepository) FindByCode(ctx context.Context, code string) (model.Discount, bool, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&d).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Discount{}, false, nil
	}
	if err != nil {
		return model.Discount{}, false, err
	}
	return d, true, nil
}

func (r *DiscountGormRepository) Create(ctx context.Context, d model.Discount) (model.Discount, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return model.Discount{}, err
	}
	return d, nil
}

func (r *DiscountGormRepository) Update(ctx context.Context, d model.Discount) error {
	res := r.db.WithContext(ctx).Model(&model.Discount{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"code":        d.Code,
			"description": d.Description,
			"type":        d.Type,
			"value":       d.Value,
			"min_amount":  d.MinAmount,
			"max_uses":    d.MaxUses,
			"is_active":   d.IsActive,
			"starts_at":   d.StartsAt,
			"expires_at":  d.ExpiresAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DiscountGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Discount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// used_count n'avance que s'il reste des utilisations.
// Même motif conditionnel que la décrémentation de stock.
func (r *DiscountGormRepository) IncrementUsageIfAvailable(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Discount{}).
		Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", id).
		Update("used_count", gorm.Expr("used_count + 1"))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
