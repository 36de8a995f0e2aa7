package repository

import (
	"context"

	"boutique/internal/domain/model"
)

type DiscountRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Discount, int64, error)
	FindByID(ctx context.Context, id int64) (model.Discount, error)
	//code normalisé en majuscules avant recherche
	FindByCode(ctx context.Context, code string) (model.Discount, bool, error)
	Create(ctx context.Context, d model.Discount) (model.Discount, error)
	Update(ctx context.Context, d model.Discount) error
	Delete(ctx context.Context, id int64) error

	// Incrémente used_count seulement s'il reste des utilisations
	// (max_uses NULL ou used_count < max_uses). false = plafond atteint.
	IncrementUsageIfAvailable(ctx context.Context, id int64) (bool, error)
}
