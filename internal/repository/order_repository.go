package repository

import (
	"context"
	"time"

	"boutique/internal/domain/model"
)

type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//unicité du numéro : même numéro => même commande
	FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, bool, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	Update(ctx context.Context, order model.Order) error
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error
}
