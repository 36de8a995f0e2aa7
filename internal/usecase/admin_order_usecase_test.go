package usecase

import (
	"context"
	"net/http"
	"testing"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"

	"github.com/stretchr/testify/assert"
)

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, log model.AuditLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	return f.entries, nil
}

func newAdminFixture() (*AdminOrderUsecase, *OrderUsecase, *fakeTxRepos, *fakeAuditRepo) {
	repos := &fakeTxRepos{
		orders:    newFakeOrderRepo(),
		items:     newFakeOrderItemRepo(),
		inventory: newFakeInventoryRepo(),
		discounts: &fakeDiscountRepo{},
	}
	audit := &fakeAuditRepo{}
	tx := &fakeTxManager{repos: repos}
	return NewAdminOrderUsecase(tx, audit), NewOrderUsecase(tx), repos, audit
}

func strPtr(s string) *string { return &s }

func TestUpdateOrder_PatchPartiel(t *testing.T) {
	admin, orders, repos, audit := newAdminFixture()
	repos.inventory.productStock[1] = 10

	placed, err := orders.PlaceOrder(context.Background(), validInput())
	assert.NoError(t, err)

	out, err := admin.UpdateOrder(context.Background(), 42, placed.ID, UpdateOrderInput{
		CustomerCity: strPtr("Lyon"),
		Notes:        strPtr("livraison à l'accueil"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Lyon", out.CustomerCity)
	assert.Equal(t, "livraison à l'accueil", out.Notes)
	// les champs non fournis ne bougent pas
	assert.Equal(t, "Claire Dupont", out.CustomerName)
	assert.Equal(t, "CMD-2026-0001", out.OrderNumber)
	// montants inchangés sans nouvelle liste d'articles
	assert.Equal(t, placed.TotalAmount, out.TotalAmount)

	assert.Len(t, audit.entries, 1)
	assert.Equal(t, model.AuditActionUpdateOrder, audit.entries[0].Action)
	assert.Equal(t, int64(42), audit.entries[0].ActorUserID)
}

func TestUpdateOrder_RemplaceLesArticlesEtRecalcule(t *testing.T) {
	admin, orders, repos, _ := newAdminFixture()
	repos.inventory.productStock[1] = 10

	placed, err := orders.PlaceOrder(context.Background(), validInput())
	assert.NoError(t, err)

	out, err := admin.UpdateOrder(context.Background(), 42, placed.ID, UpdateOrderInput{
		Items: []PlaceOrderItemInput{
			{ProductID: 2, Name: "Chemise lin", UnitPrice: 3990, Quantity: 3},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "Chemise lin", out.Items[0].Name)
	assert.Equal(t, int64(11970), out.SubtotalAmount)
	assert.Equal(t, int64(11970), out.TotalAmount)
	// l'édition ne touche pas au stock
	assert.Equal(t, int64(8), repos.inventory.productStock[1])
	assert.Equal(t, int64(0), repos.inventory.productStock[2])
}

func TestUpdateOrder_Validation(t *testing.T) {
	admin, _, _, _ := newAdminFixture()
	ctx := context.Background()

	_, err := admin.UpdateOrder(ctx, 42, 0, UpdateOrderInput{})
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = admin.UpdateOrder(ctx, 42, 1, UpdateOrderInput{Status: strPtr("PERDU")})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = admin.UpdateOrder(ctx, 42, 1, UpdateOrderInput{
		Items: []PlaceOrderItemInput{{ProductID: 1, Name: "x", UnitPrice: 100, Quantity: 0}},
	})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = admin.UpdateOrder(ctx, 42, 999, UpdateOrderInput{})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestUpdateStatus(t *testing.T) {
	admin, orders, repos, audit := newAdminFixture()
	repos.inventory.productStock[1] = 10

	placed, err := orders.PlaceOrder(context.Background(), validInput())
	assert.NoError(t, err)

	out, err := admin.UpdateStatus(context.Background(), 42, placed.ID, "SHIPPED")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, out.Status)
	assert.Len(t, audit.entries, 1)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, audit.entries[0].Action)

	_, err = admin.UpdateStatus(context.Background(), 42, placed.ID, "EXPEDIE")
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = admin.UpdateStatus(context.Background(), 42, 999, "SHIPPED")
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestDeleteOrder_RestitueLeStock(t *testing.T) {
	admin, orders, repos, audit := newAdminFixture()
	repos.inventory.productStock[1] = 10

	placed, err := orders.PlaceOrder(context.Background(), validInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(8), repos.inventory.productStock[1])

	err = admin.DeleteOrder(context.Background(), 42, placed.ID)
	assert.NoError(t, err)

	// le stock revient exactement à son niveau d'avant la commande
	assert.Equal(t, int64(10), repos.inventory.productStock[1])
	assert.Empty(t, repos.items.byOrderID[placed.ID])
	assert.Len(t, audit.entries, 1)
	assert.Equal(t, model.AuditActionDeleteOrder, audit.entries[0].Action)
}

func TestDeleteOrder_RestitueChaqueLigne(t *testing.T) {
	admin, orders, repos, _ := newAdminFixture()
	repos.inventory.productStock[1] = 10
	repos.inventory.productStock[2] = 6

	in := validInput()
	in.Items = append(in.Items, PlaceOrderItemInput{
		ProductID: 2, Name: "Chemise lin", UnitPrice: 3990, Quantity: 4,
	})

	placed, err := orders.PlaceOrder(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), repos.inventory.productStock[1])
	assert.Equal(t, int64(2), repos.inventory.productStock[2])

	err = admin.DeleteOrder(context.Background(), 42, placed.ID)
	assert.NoError(t, err)

	assert.Equal(t, int64(10), repos.inventory.productStock[1])
	assert.Equal(t, int64(6), repos.inventory.productStock[2])
}

func TestDeleteOrder_RestitueLaVariante(t *testing.T) {
	admin, orders, repos, _ := newAdminFixture()
	repos.inventory.productStock[1] = 10
	repos.inventory.variantStock[7] = 4

	in := validInput()
	variantID := int64(7)
	in.Items[0].VariantID = &variantID

	placed, err := orders.PlaceOrder(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), repos.inventory.variantStock[7])

	err = admin.DeleteOrder(context.Background(), 42, placed.ID)
	assert.NoError(t, err)

	assert.Equal(t, int64(4), repos.inventory.variantStock[7])
	assert.Equal(t, int64(10), repos.inventory.productStock[1])
}

// Une commande annulée a déjà rendu son stock : la supprimer ne doit pas
// le créditer une seconde fois.
func TestDeleteOrder_CommandeAnnuleeNeRestituePas(t *testing.T) {
	admin, orders, repos, _ := newAdminFixture()
	repos.inventory.productStock[1] = 10

	placed, err := orders.PlaceOrder(context.Background(), validInput())
	assert.NoError(t, err)

	o := repos.orders.byNumber[placed.OrderNumber]
	o.Status = model.OrderStatusCancelled
	repos.orders.byNumber[placed.OrderNumber] = o

	err = admin.DeleteOrder(context.Background(), 42, placed.ID)
	assert.NoError(t, err)

	assert.Equal(t, int64(8), repos.inventory.productStock[1])
}

func TestDeleteOrder_Introuvable(t *testing.T) {
	admin, _, _, audit := newAdminFixture()

	err := admin.DeleteOrder(context.Background(), 42, 999)

	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Empty(t, audit.entries)
}
