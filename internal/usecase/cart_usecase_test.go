package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vitrine/internal/domain/model"
	repo "vitrine/internal/repository"
	"vitrine/internal/usecase"
)

func catalogWithShirt() model.Storefront {
	return model.Storefront{
		Store: model.Store{Slug: "minhaloja", Name: "Minha Loja"},
		Products: []model.Product{
			{ID: "p1", Title: "Shirt", Price: 4990, Variants: []model.Variant{{Size: "M"}}},
			{ID: "p2", Title: "Mug", Price: 1000},
		},
	}
}

func TestCartUsecase_GetCart_MissingSessionIsEmptyCart(t *testing.T) {
	carts := new(CartStoreMock)
	carts.On("Get", mock.Anything, "s1").Return(nil, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, new(SourceMock), testLogger())

	out, err := uc.GetCart(context.Background(), "s1")
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
	assert.Equal(t, "R$ 0.00", out.TotalLabel)
}

func TestCartUsecase_AddToCart_ResolvesProductFromCatalog(t *testing.T) {
	carts := new(CartStoreMock)
	carts.On("Get", mock.Anything, "s1").Return(nil, repo.ErrNotFound)
	carts.On("Save", mock.Anything, mock.MatchedBy(func(c *model.Cart) bool {
		return len(c.Lines) == 1 &&
			c.Lines[0].ProductID == "p1" &&
			c.Lines[0].UnitPrice == 4990 &&
			c.Lines[0].Variant == "M"
	})).Return(nil)

	source := new(SourceMock)
	source.On("Fetch", mock.Anything, "minhaloja").Return(catalogWithShirt(), nil)

	uc := usecase.NewCartUsecase(carts, source, testLogger())

	out, err := uc.AddToCart(context.Background(), "s1", usecase.AddToCartInput{
		Identifier: "minhaloja",
		ProductID:  "p1",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.TotalItems)
	assert.Equal(t, int64(4990), out.Total)
	assert.Equal(t, "R$ 49.90", out.Items[0].PriceLabel)
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	source := new(SourceMock)
	source.On("Fetch", mock.Anything, "minhaloja").Return(catalogWithShirt(), nil)

	uc := usecase.NewCartUsecase(new(CartStoreMock), source, testLogger())

	_, err := uc.AddToCart(context.Background(), "s1", usecase.AddToCartInput{
		Identifier: "minhaloja",
		ProductID:  "nope",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid product_id")
}

func TestCartUsecase_AddToCart_StoreNotFound(t *testing.T) {
	source := new(SourceMock)
	source.On("Fetch", mock.Anything, "naoexiste").Return(model.Storefront{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(new(CartStoreMock), source, testLogger())

	_, err := uc.AddToCart(context.Background(), "s1", usecase.AddToCartInput{
		Identifier: "naoexiste",
		ProductID:  "p1",
	})
	assertHTTPError(t, err, http.StatusNotFound, "store not found")
}

func TestCartUsecase_AddToCart_DuplicateIncrements(t *testing.T) {
	existing := model.NewCart("s1", "minhaloja", time.Now())
	existing.Add(model.Product{ID: "p1", Title: "Shirt", Price: 4990}, "M")

	carts := new(CartStoreMock)
	carts.On("Get", mock.Anything, "s1").Return(existing, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)

	source := new(SourceMock)
	source.On("Fetch", mock.Anything, "minhaloja").Return(catalogWithShirt(), nil)

	uc := usecase.NewCartUsecase(carts, source, testLogger())

	out, err := uc.AddToCart(context.Background(), "s1", usecase.AddToCartInput{
		Identifier: "minhaloja",
		ProductID:  "p1",
	})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, "R$ 99.80", out.Items[0].SubtotalLabel)
}

func TestCartUsecase_AdjustItem_ToZeroRemovesLine(t *testing.T) {
	existing := model.NewCart("s1", "minhaloja", time.Now())
	existing.Add(model.Product{ID: "p1", Title: "Shirt", Price: 4990}, "M")

	carts := new(CartStoreMock)
	carts.On("Get", mock.Anything, "s1").Return(existing, nil)
	carts.On("Save", mock.Anything, mock.MatchedBy(func(c *model.Cart) bool {
		return c.IsEmpty()
	})).Return(nil)

	uc := usecase.NewCartUsecase(carts, new(SourceMock), testLogger())

	out, err := uc.AdjustItem(context.Background(), "s1", "p1", usecase.AdjustItemInput{Delta: -1})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

func TestCartUsecase_AdjustItem_ZeroDeltaRejected(t *testing.T) {
	uc := usecase.NewCartUsecase(new(CartStoreMock), new(SourceMock), testLogger())

	_, err := uc.AdjustItem(context.Background(), "s1", "p1", usecase.AdjustItemInput{Delta: 0})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid delta")
}

func TestCartUsecase_RemoveItem(t *testing.T) {
	existing := model.NewCart("s1", "minhaloja", time.Now())
	existing.Add(model.Product{ID: "p1", Title: "Shirt", Price: 4990}, "M")
	existing.Add(model.Product{ID: "p2", Title: "Mug", Price: 1000}, "")

	carts := new(CartStoreMock)
	carts.On("Get", mock.Anything, "s1").Return(existing, nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewCartUsecase(carts, new(SourceMock), testLogger())

	out, err := uc.RemoveItem(context.Background(), "s1", "p1")
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "p2", out.Items[0].ProductID)
}
