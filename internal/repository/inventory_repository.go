package repository

import (
	"boutique/internal/domain/model"
	"context"
)

// Le registre de stock : les compteurs quantity des produits et des variantes.
// Toute décrémentation passe par une écriture conditionnelle
// (quantity >= demandé) pour fermer la course check-then-act.
type InventoryRepository interface {
	// Décrémente si le stock suffit, sinon false sans rien écrire.
	DecreaseProductStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	DecreaseVariantStockIfEnough(ctx context.Context, variantID int64, qty int64) (bool, error)

	// Restitution de stock (suppression d'une commande non annulée).
	IncreaseProductStock(ctx context.Context, productID int64, qty int64) error
	IncreaseVariantStock(ctx context.Context, variantID int64, qty int64) error

	// Correction manuelle depuis le dashboard.
	SetProductStock(ctx context.Context, productID int64, newStock int64) error
	SetVariantStock(ctx context.Context, variantID int64, newStock int64) error

	// Historique des corrections.
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
