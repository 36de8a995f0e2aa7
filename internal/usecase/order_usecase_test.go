package usecase

import (
	"context"
	"net/http"
	"testing"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"

	"github.com/stretchr/testify/assert"
)

// ---- doubles en mémoire ----

type fakeOrderRepo struct {
	byNumber    map[string]model.Order
	nextID      int64
	createCalls int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byNumber: map[string]model.Order{}, nextID: 1}
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	for _, o := range f.byNumber {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (f *fakeOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, bool, error) {
	o, ok := f.byNumber[orderNumber]
	return o, ok, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter repo.OrderListFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range f.byNumber {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	f.createCalls++
	order.ID = f.nextID
	f.nextID++
	f.byNumber[order.OrderNumber] = order
	return order.ID, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, order model.Order) error { return nil }

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, orderID int64) error { return nil }

type fakeOrderItemRepo struct {
	byOrderID map[int64][]model.OrderItem
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{byOrderID: map[int64][]model.OrderItem{}}
}

func (f *fakeOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for i := range items {
		items[i].OrderID = orderID
	}
	f.byOrderID[orderID] = append(f.byOrderID[orderID], items...)
	return nil
}

func (f *fakeOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return f.byOrderID[orderID], nil
}

func (f *fakeOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID int64) error {
	delete(f.byOrderID, orderID)
	return nil
}

type fakeInventoryRepo struct {
	productStock map[int64]int64
	variantStock map[int64]int64
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{productStock: map[int64]int64{}, variantStock: map[int64]int64{}}
}

func (f *fakeInventoryRepo) DecreaseProductStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	if f.productStock[productID] < qty {
		return false, nil
	}
	f.productStock[productID] -= qty
	return true, nil
}

func (f *fakeInventoryRepo) DecreaseVariantStockIfEnough(ctx context.Context, variantID int64, qty int64) (bool, error) {
	if f.variantStock[variantID] < qty {
		return false, nil
	}
	f.variantStock[variantID] -= qty
	return true, nil
}

func (f *fakeInventoryRepo) IncreaseProductStock(ctx context.Context, productID int64, qty int64) error {
	f.productStock[productID] += qty
	return nil
}

func (f *fakeInventoryRepo) IncreaseVariantStock(ctx context.Context, variantID int64, qty int64) error {
	f.variantStock[variantID] += qty
	return nil
}

func (f *fakeInventoryRepo) SetProductStock(ctx context.Context, productID int64, newStock int64) error {
	f.productStock[productID] = newStock
	return nil
}

func (f *fakeInventoryRepo) SetVariantStock(ctx context.Context, variantID int64, newStock int64) error {
	f.variantStock[variantID] = newStock
	return nil
}

func (f *fakeInventoryRepo) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	return nil
}

type fakeDiscountRepo struct {
	repo.DiscountRepository
	discount *model.Discount
}

func (f *fakeDiscountRepo) FindByCode(ctx context.Context, code string) (model.Discount, bool, error) {
	if f.discount == nil {
		return model.Discount{}, false, nil
	}
	return *f.discount, true, nil
}

func (f *fakeDiscountRepo) IncrementUsageIfAvailable(ctx context.Context, id int64) (bool, error) {
	if f.discount.MaxUses != nil && f.discount.UsedCount >= *f.discount.MaxUses {
		return false, nil
	}
	f.discount.UsedCount++
	return true, nil
}

type fakeTxRepos struct {
	orders    *fakeOrderRepo
	items     *fakeOrderItemRepo
	inventory *fakeInventoryRepo
	discounts *fakeDiscountRepo
}

func (f *fakeTxRepos) Orders() repo.OrderRepository         { return f.orders }
func (f *fakeTxRepos) OrderItems() repo.OrderItemRepository { return f.items }
func (f *fakeTxRepos) Inventory() repo.InventoryRepository  { return f.inventory }
func (f *fakeTxRepos) Products() repo.ProductRepository     { return nil }
func (f *fakeTxRepos) Discounts() repo.DiscountRepository   { return f.discounts }

// fakeTxManager exécute fn sans vraie transaction ; l'atomicité du
// rollback est couverte par les tests d'intégration du dépôt GORM.
type fakeTxManager struct {
	repos *fakeTxRepos
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f.repos)
}

func newFixture() (*OrderUsecase, *fakeTxRepos) {
	repos := &fakeTxRepos{
		orders:    newFakeOrderRepo(),
		items:     newFakeOrderItemRepo(),
		inventory: newFakeInventoryRepo(),
		discounts: &fakeDiscountRepo{},
	}
	return NewOrderUsecase(&fakeTxManager{repos: repos}), repos
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		OrderNumber:   "CMD-2026-0001",
		CustomerName:  "Claire Dupont",
		CustomerEmail: "claire@example.com",
		TotalAmount:   9990,
		Items: []PlaceOrderItemInput{
			{ProductID: 1, Name: "Robe d'été", UnitPrice: 4995, Quantity: 2, Size: "M", Color: "bleu"},
		},
	}
}

// ---- tests ----

func TestPlaceOrder_Validation(t *testing.T) {
	uc, _ := newFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*PlaceOrderInput)
	}{
		{"numéro vide", func(in *PlaceOrderInput) { in.OrderNumber = "  " }},
		{"aucun article", func(in *PlaceOrderInput) { in.Items = nil }},
		{"montant nul", func(in *PlaceOrderInput) { in.TotalAmount = 0 }},
		{"quantité nulle", func(in *PlaceOrderInput) { in.Items[0].Quantity = 0 }},
		{"quantité négative", func(in *PlaceOrderInput) { in.Items[0].Quantity = -3 }},
		{"prix négatif", func(in *PlaceOrderInput) { in.Items[0].UnitPrice = -1 }},
		{"nom d'article vide", func(in *PlaceOrderInput) { in.Items[0].Name = "" }},
		{"type de remise inconnu", func(in *PlaceOrderInput) { in.DiscountType = "BOGOF" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := uc.PlaceOrder(ctx, in)

			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

func TestPlaceOrder_DecrementeLeStockProduit(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 5

	out, err := uc.PlaceOrder(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, out.Status)
	assert.Equal(t, int64(9990), out.SubtotalAmount)
	assert.Equal(t, int64(9990), out.TotalAmount)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(3), repos.inventory.productStock[1])
}

func TestPlaceOrder_DecrementeLaVarianteQuandPrecisee(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10
	repos.inventory.variantStock[7] = 4

	in := validInput()
	variantID := int64(7)
	in.Items[0].VariantID = &variantID

	_, err := uc.PlaceOrder(context.Background(), in)

	assert.NoError(t, err)
	// le compteur produit n'est pas touché quand une variante est visée
	assert.Equal(t, int64(10), repos.inventory.productStock[1])
	assert.Equal(t, int64(2), repos.inventory.variantStock[7])
}

func TestPlaceOrder_StockInsuffisant(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 1 // demande 2

	_, err := uc.PlaceOrder(context.Background(), validInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "Stock insuffisant pour Robe d'été (taille M, couleur bleu)", he.Message)
	// la commande n'a jamais été insérée
	assert.Equal(t, 0, repos.orders.createCalls)
}

func TestPlaceOrder_ConflitDeNumero(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10

	first, err := uc.PlaceOrder(context.Background(), validInput())
	assert.NoError(t, err)

	// rejouer le même numéro : conflit portant la commande existante,
	// et surtout aucun deuxième décrément
	_, err = uc.PlaceOrder(context.Background(), validInput())

	ce, ok := AsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, first.ID, ce.Existing.ID)
	assert.Equal(t, "CMD-2026-0001", ce.Existing.OrderNumber)
	assert.Len(t, ce.Existing.Items, 1)
	assert.Equal(t, int64(8), repos.inventory.productStock[1])
	assert.Equal(t, 1, repos.orders.createCalls)
}

func TestPlaceOrder_RemiseExplicitePourcentage(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10

	in := validInput()
	in.DiscountType = string(model.DiscountTypePercentage)
	in.DiscountValue = 10

	out, err := uc.PlaceOrder(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, int64(9990), out.SubtotalAmount)
	assert.Equal(t, int64(999), out.DiscountAmount)
	assert.Equal(t, int64(8991), out.TotalAmount)
}

func TestPlaceOrder_CodePromoConsommeUneUtilisation(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10
	maxUses := int64(2)
	repos.discounts.discount = &model.Discount{
		ID:       1,
		Code:     "ETE10",
		Type:     model.DiscountTypePercentage,
		Value:    10,
		MaxUses:  &maxUses,
		IsActive: true,
	}

	in := validInput()
	in.DiscountCode = "ETE10"

	out, err := uc.PlaceOrder(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, "ETE10", out.DiscountCode)
	assert.Equal(t, int64(8991), out.TotalAmount)
	assert.Equal(t, int64(1), repos.discounts.discount.UsedCount)
}

func TestPlaceOrder_CodePromoEpuise(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10
	maxUses := int64(1)
	repos.discounts.discount = &model.Discount{
		ID:        1,
		Code:      "DERNIER",
		Type:      model.DiscountTypeAmount,
		Value:     500,
		MaxUses:   &maxUses,
		UsedCount: 1,
		IsActive:  true,
	}

	in := validInput()
	in.DiscountCode = "DERNIER"

	_, err := uc.PlaceOrder(context.Background(), in)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestPlaceOrder_CodePromoInconnu(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10

	in := validInput()
	in.DiscountCode = "RIEN"

	_, err := uc.PlaceOrder(context.Background(), in)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "code promo inconnu", he.Message)
}

func TestPlaceOrder_MontantMinimumNonAtteint(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10
	minAmount := int64(20000)
	repos.discounts.discount = &model.Discount{
		ID:        1,
		Code:      "GROSPANIER",
		Type:      model.DiscountTypeAmount,
		Value:     2000,
		MinAmount: &minAmount,
		IsActive:  true,
	}

	in := validInput()
	in.DiscountCode = "GROSPANIER"

	_, err := uc.PlaceOrder(context.Background(), in)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, "montant minimum non atteint pour ce code", he.Message)
	// aucune utilisation consommée
	assert.Equal(t, int64(0), repos.discounts.discount.UsedCount)
}

func TestGetOrderByNumber(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 10

	placed, err := uc.PlaceOrder(context.Background(), validInput())
	assert.NoError(t, err)

	out, err := uc.GetOrderByNumber(context.Background(), "CMD-2026-0001")
	assert.NoError(t, err)
	assert.Equal(t, placed.ID, out.ID)
	assert.Len(t, out.Items, 1)

	_, err = uc.GetOrderByNumber(context.Background(), "CMD-INCONNUE")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestListOrders_PaginationBornes(t *testing.T) {
	uc, _ := newFixture()
	ctx := context.Background()

	_, err := uc.ListOrders(ctx, repo.OrderListFilter{Page: 0, Limit: 20})
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = uc.ListOrders(ctx, repo.OrderListFilter{Page: 1, Limit: 101})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = uc.ListOrders(ctx, repo.OrderListFilter{Page: 1, Limit: 20, Status: "LIVRAISON"})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestListOrders_CalculTotalPages(t *testing.T) {
	uc, repos := newFixture()
	repos.inventory.productStock[1] = 100

	for _, n := range []string{"CMD-1", "CMD-2", "CMD-3"} {
		in := validInput()
		in.OrderNumber = n
		_, err := uc.PlaceOrder(context.Background(), in)
		assert.NoError(t, err)
	}

	out, err := uc.ListOrders(context.Background(), repo.OrderListFilter{Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Pagination.Total)
	assert.Equal(t, int64(2), out.Pagination.TotalPages)
}
