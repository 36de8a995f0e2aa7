package repository

import (
	"context"

	"boutique/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	//utilisé par l'édition « remplace tout » et la suppression de commande
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
