package repository

import (
	"context"
	"testing"

	"boutique/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByCode_Normalisation(t *testing.T) {
	db := openTestDB(t)
	r := NewDiscountGormRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, model.Discount{
		Code:     "ETE10",
		Type:     model.DiscountTypePercentage,
		Value:    10,
		IsActive: true,
	})
	require.NoError(t, err)

	// recherche insensible à la casse et aux espaces
	d, found, err := r.FindByCode(ctx, "  ete10 ")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ETE10", d.Code)

	_, found, err = r.FindByCode(ctx, "HIVER20")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestIncrementUsageIfAvailable(t *testing.T) {
	db := openTestDB(t)
	r := NewDiscountGormRepository(db)
	ctx := context.Background()

	maxUses := int64(2)
	d, err := r.Create(ctx, model.Discount{
		Code:     "LIMITE2",
		Type:     model.DiscountTypeAmount,
		Value:    500,
		MaxUses:  &maxUses,
		IsActive: true,
	})
	require.NoError(t, err)

	ok, err := r.IncrementUsageIfAvailable(ctx, d.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IncrementUsageIfAvailable(ctx, d.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	// plafond atteint : refus sans écriture
	ok, err = r.IncrementUsageIfAvailable(ctx, d.ID)
	assert.NoError(t, err)
	assert.False(t, ok)

	got, err := r.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.UsedCount)
}

func TestIncrementUsageIfAvailable_SansPlafond(t *testing.T) {
	db := openTestDB(t)
	r := NewDiscountGormRepository(db)
	ctx := context.Background()

	d, err := r.Create(ctx, model.Discount{
		Code:     "ILLIMITE",
		Type:     model.DiscountTypePercentage,
		Value:    5,
		IsActive: true,
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		ok, err := r.IncrementUsageIfAvailable(ctx, d.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}

	got, err := r.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.UsedCount)
}
