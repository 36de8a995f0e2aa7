package repository

import (
	"boutique/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Recherche catalogue côté vitrine.
type ProductListQuery struct {
	Page         int
	Limit        int
	Q            string
	CollectionID *int64
	MinPrice     *int64
	MaxPrice     *int64
	Sort         string
}

// Persistance des produits et de leurs variantes.
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//produit + variantes préchargées
	FindByIDWithVariants(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	FindVariantByID(ctx context.Context, variantID int64) (model.ProductVariant, error)
	CreateVariant(ctx context.Context, v model.ProductVariant) (model.ProductVariant, error)
	UpdateVariant(ctx context.Context, v model.ProductVariant) error
	DeleteVariant(ctx context.Context, variantID int64) error
}
