package repository

import (
	"context"

	"boutique/internal/domain/model"
)

type CollectionRepository interface {
	List(ctx context.Context) ([]model.Collection, error)
	FindByID(ctx context.Context, id int64) (model.Collection, error)
	FindBySlug(ctx context.Context, slug string) (model.Collection, error)
	Create(ctx context.Context, c model.Collection) (model.Collection, error)
	Update(ctx context.Context, c model.Collection) error
	SoftDelete(ctx context.Context, id int64) error
}
