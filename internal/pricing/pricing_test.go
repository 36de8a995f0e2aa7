package pricing

import (
	"testing"

	"boutique/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestCompute_SansRemise(t *testing.T) {
	q := Compute([]LineItem{
		{UnitPrice: 2500, Quantity: 2},
		{UnitPrice: 4990, Quantity: 1},
	}, nil)

	assert.Equal(t, int64(9990), q.Subtotal)
	assert.Equal(t, int64(0), q.DiscountAmount)
	assert.Equal(t, int64(9990), q.Total)
}

func TestCompute_Pourcentage(t *testing.T) {
	q := Compute([]LineItem{
		{UnitPrice: 10000, Quantity: 1},
	}, &DiscountSpec{Type: model.DiscountTypePercentage, Value: 20})

	assert.Equal(t, int64(10000), q.Subtotal)
	assert.Equal(t, int64(2000), q.DiscountAmount)
	assert.Equal(t, int64(8000), q.Total)
}

func TestCompute_MontantFixe(t *testing.T) {
	q := Compute([]LineItem{
		{UnitPrice: 3000, Quantity: 2},
	}, &DiscountSpec{Type: model.DiscountTypeAmount, Value: 1500})

	assert.Equal(t, int64(6000), q.Subtotal)
	assert.Equal(t, int64(1500), q.DiscountAmount)
	assert.Equal(t, int64(4500), q.Total)
}

// Une remise fixe supérieure au sous-total est plafonnée : total 0,
// jamais négatif.
func TestCompute_MontantFixeSuperieurAuSousTotal(t *testing.T) {
	q := Compute([]LineItem{
		{UnitPrice: 1000, Quantity: 1},
	}, &DiscountSpec{Type: model.DiscountTypeAmount, Value: 5000})

	assert.Equal(t, int64(1000), q.Subtotal)
	assert.Equal(t, int64(1000), q.DiscountAmount)
	assert.Equal(t, int64(0), q.Total)
}

func TestCompute_ValeursNegativesComptentPourZero(t *testing.T) {
	q := Compute([]LineItem{
		{UnitPrice: -500, Quantity: 3},
		{UnitPrice: 2000, Quantity: -1},
		{UnitPrice: 1000, Quantity: 2},
	}, &DiscountSpec{Type: model.DiscountTypePercentage, Value: -10})

	assert.Equal(t, int64(2000), q.Subtotal)
	assert.Equal(t, int64(0), q.DiscountAmount)
	assert.Equal(t, int64(2000), q.Total)
}

func TestCompute_PanierVide(t *testing.T) {
	q := Compute(nil, &DiscountSpec{Type: model.DiscountTypePercentage, Value: 50})

	assert.Equal(t, int64(0), q.Subtotal)
	assert.Equal(t, int64(0), q.DiscountAmount)
	assert.Equal(t, int64(0), q.Total)
}

func TestCompute_CentPourCent(t *testing.T) {
	q := Compute([]LineItem{
		{UnitPrice: 4990, Quantity: 2},
	}, &DiscountSpec{Type: model.DiscountTypePercentage, Value: 100})

	assert.Equal(t, int64(9980), q.DiscountAmount)
	assert.Equal(t, int64(0), q.Total)
}
