package usecase

import (
	"context"
	"net/http"
	"testing"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// double minimal : seuls les appels exercés sont implémentés
type memProductRepo struct {
	repo.ProductRepository
	products map[int64]model.Product
	variants map[int64]model.ProductVariant
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products: map[int64]model.Product{},
		variants: map[int64]model.ProductVariant{},
	}
}

func (m *memProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProductRepo) FindByIDWithVariants(ctx context.Context, id int64) (model.Product, error) {
	return m.FindByID(ctx, id)
}

func (m *memProductRepo) FindVariantByID(ctx context.Context, variantID int64) (model.ProductVariant, error) {
	v, ok := m.variants[variantID]
	if !ok {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	return v, nil
}

func (m *memProductRepo) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range m.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

type recordingInventoryRepo struct {
	fakeInventoryRepo
	adjustments []model.InventoryAdjustment
}

func (r *recordingInventoryRepo) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	r.adjustments = append(r.adjustments, adj)
	return nil
}

func newProductFixture() (*ProductUsecase, *memProductRepo, *recordingInventoryRepo, *fakeAuditRepo) {
	products := newMemProductRepo()
	inventory := &recordingInventoryRepo{fakeInventoryRepo: *newFakeInventoryRepo()}
	audit := &fakeAuditRepo{}
	return NewProductUsecase(products, inventory, audit), products, inventory, audit
}

func TestListPublicProducts_Validation(t *testing.T) {
	uc, _, _, _ := newProductFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		in   ListProductsInput
	}{
		{"page nulle", ListProductsInput{Page: 0, Limit: 20}},
		{"limite hors bornes", ListProductsInput{Page: 1, Limit: 101}},
		{"prix négatif", ListProductsInput{Page: 1, Limit: 20, MinPrice: int64Ptr(-1)}},
		{"bornes inversées", ListProductsInput{Page: 1, Limit: 20, MinPrice: int64Ptr(500), MaxPrice: int64Ptr(100)}},
		{"tri inconnu", ListProductsInput{Page: 1, Limit: 20, Sort: "alphabetique"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.ListPublicProducts(ctx, tt.in)
			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

// Un produit désactivé est introuvable côté vitrine, même avec un bon id.
func TestGetProductDetail_ProduitInactif(t *testing.T) {
	uc, products, _, _ := newProductFixture()
	ctx := context.Background()

	products.products[1] = model.Product{ID: 1, Name: "Archive", IsActive: false}

	_, err := uc.GetProductDetail(ctx, 1)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	_, err = uc.GetProductDetail(ctx, 999)
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestSetStock_Produit(t *testing.T) {
	uc, products, inventory, audit := newProductFixture()
	ctx := context.Background()

	products.products[1] = model.Product{ID: 1, Name: "Jean slim", Quantity: 3, IsActive: true}

	err := uc.SetStock(ctx, 42, 1, nil, 10, "réception fournisseur")
	require.NoError(t, err)

	assert.Equal(t, int64(10), inventory.productStock[1])

	// l'écart est historisé avec son motif
	require.Len(t, inventory.adjustments, 1)
	assert.Equal(t, int64(7), inventory.adjustments[0].Delta)
	assert.Equal(t, "réception fournisseur", inventory.adjustments[0].Reason)
	assert.Equal(t, int64(42), inventory.adjustments[0].AdminUserID)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.AuditActionUpdateStock, audit.entries[0].Action)
}

func TestSetStock_Variante(t *testing.T) {
	uc, products, inventory, _ := newProductFixture()
	ctx := context.Background()

	products.products[1] = model.Product{ID: 1, Name: "Jean slim", IsActive: true}
	products.variants[7] = model.ProductVariant{ID: 7, ProductID: 1, Quantity: 2}

	variantID := int64(7)
	err := uc.SetStock(ctx, 42, 1, &variantID, 5, "inventaire")
	require.NoError(t, err)

	assert.Equal(t, int64(5), inventory.variantStock[7])
	require.Len(t, inventory.adjustments, 1)
	assert.Equal(t, int64(3), inventory.adjustments[0].Delta)
	assert.Equal(t, &variantID, inventory.adjustments[0].VariantID)
}

func TestSetStock_Validation(t *testing.T) {
	uc, _, _, _ := newProductFixture()
	ctx := context.Background()

	err := uc.SetStock(ctx, 42, 1, nil, -1, "correction")
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	err = uc.SetStock(ctx, 42, 1, nil, 5, "  ")
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	err = uc.SetStock(ctx, 42, 999, nil, 5, "correction")
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
