package repository

import "context"

// Les dépôts disponibles à l'intérieur d'une transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	Discounts() DiscountRepository
}

// Cache le begin/commit/rollback aux usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
