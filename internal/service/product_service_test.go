package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

func TestProductServiceFilterByCategory(t *testing.T) {
	f := newFixture(t)
	view, err := f.products.List(context.Background(), listing.Params{
		Filters:  map[string]string{"category": "Electronics"},
		Page:     1,
		PageSize: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, view.TotalItems)
	for _, p := range view.Items {
		assert.Equal(t, "Electronics", p.Category)
	}
}

func TestProductServiceSortByPriceDesc(t *testing.T) {
	f := newFixture(t)
	view, err := f.products.List(context.Background(), listing.Params{
		Sort:     listing.Sort{Key: "price", Direction: listing.Desc},
		Page:     1,
		PageSize: 25,
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 25)
	for i := 0; i+1 < len(view.Items); i++ {
		assert.GreaterOrEqual(t, view.Items[i].Price, view.Items[i+1].Price)
	}
	assert.Equal(t, 2, view.Window.TotalPages)
}

func TestProductServiceAdd(t *testing.T) {
	f := newFixture(t)
	got, err := f.products.Add(context.Background(), "", dto.CreateProductRequest{
		Name:     "  Standing Desk  ",
		Category: "Office",
		Price:    349.99,
		Stock:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Standing Desk", got.Name)
	assert.Contains(t, got.ID, "PRD-")
	assert.Equal(t, 51, f.products.store.Len())
}

func TestProductServiceAddRejectsNegativeStock(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.Add(context.Background(), "", dto.CreateProductRequest{Name: "Desk", Category: "Office", Stock: -1})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "stock")
	assert.Equal(t, 50, f.products.store.Len())
}

func TestProductServiceRejectsBlankNameAndCategory(t *testing.T) {
	f := newFixture(t)
	before := f.products.store.Len()
	_, err := f.products.Add(context.Background(), "", dto.CreateProductRequest{Name: "  ", Category: "  "})
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "is required", appErr.Details["name"])
	assert.Equal(t, "is required", appErr.Details["category"])
	assert.Equal(t, before, f.products.store.Len())

	blank := " "
	_, err = f.products.Update(context.Background(), "PRD-001", dto.UpdateProductRequest{Name: &blank})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	got, err := f.products.Get(context.Background(), "PRD-001")
	require.NoError(t, err)
	assert.NotEmpty(t, got.Name)
}

func TestProductServiceUpdate(t *testing.T) {
	f := newFixture(t)
	stock := 0
	price := 10.5
	got, err := f.products.Update(context.Background(), "PRD-001", dto.UpdateProductRequest{Stock: &stock, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, 10.5, got.Price)

	_, err = f.products.Update(context.Background(), "PRD-404", dto.UpdateProductRequest{Stock: &stock})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestProductServiceDeleteWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cancelled, err := f.products.RequestDelete(ctx, "PRD-002")
	require.NoError(t, err)
	resolved, err := f.confirmations.Resolve(ctx, cancelled.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionCancel})
	require.NoError(t, err)
	assert.Equal(t, models.ConfirmationAborted, resolved.Status)
	assert.True(t, f.products.store.Has("PRD-002"))

	confirmed, err := f.products.RequestDelete(ctx, "PRD-002")
	require.NoError(t, err)
	assert.Equal(t, models.ConfirmDeleteProduct, confirmed.Kind)
	resolved, err = f.confirmations.Resolve(ctx, confirmed.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	require.NoError(t, err)
	assert.Equal(t, models.ConfirmationCommitted, resolved.Status)
	assert.False(t, f.products.store.Has("PRD-002"))
}

func TestProductServiceDeleteAlreadyRemovedAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.products.RequestDelete(ctx, "PRD-003")
	require.NoError(t, err)
	second, err := f.products.RequestDelete(ctx, "PRD-003")
	require.NoError(t, err)

	_, err = f.confirmations.Resolve(ctx, first.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	require.NoError(t, err)
	_, err = f.confirmations.Resolve(ctx, second.ID, dto.ResolveConfirmationRequest{Decision: models.DecisionConfirm})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	got, err := f.confirmations.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConfirmationAborted, got.Status)
}
