package repository

import (
	"context"
	"errors"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"

	"gorm.io/gorm"
)

type CollectionGormRepository struct {
	db *gorm.DB
}

func NewCollectionGormRepository(db *gorm.DB) *CollectionGormRepository {
	return &CollectionGormRepository{db: db}
}

func (r *CollectionGormRepository) List(ctx context.Context) ([]model.Collection, error) {
	var items []model.Collection
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Collection{}, err
	}
	return items, nil
}

func (r *CollectionGormRepository) FindByID(ctx context.Context, id int64) (model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Collection{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) FindBySlug(ctx context.Context, slug string) (model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Collection{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) Update(ctx context.Context, c model.Collection) error {
	res := r.db.WithContext(ctx).Model(&model.Collection{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"image":       c.Image,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CollectionGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Collection{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
