package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"vitrine/internal/domain/model"
	"vitrine/internal/money"
	repo "vitrine/internal/repository"
)

// CartUsecase owns the session cart ledger. The uniqueness and
// positivity invariants live on model.Cart; this layer resolves
// products against the catalog, loads and saves sessions, and shapes
// responses.
type CartUsecase struct {
	carts  repo.CartStore
	source repo.StorefrontSource
	log    *logrus.Logger
}

// DI
func NewCartUsecase(carts repo.CartStore, source repo.StorefrontSource, log *logrus.Logger) *CartUsecase {
	return &CartUsecase{carts: carts, source: source, log: log}
}

type CartItemOutput struct {
	ProductID     string `json:"produto_id"`
	Title         string `json:"titulo"`
	Price         int64  `json:"preco_centavos"`
	PriceLabel    string `json:"preco"`
	ImageURL      string `json:"image,omitempty"`
	Variant       string `json:"tamanho"`
	Quantity      int64  `json:"quantidade"`
	Subtotal      int64  `json:"subtotal_centavos"`
	SubtotalLabel string `json:"subtotal"`
}

type CartOutput struct {
	Items      []CartItemOutput `json:"items"`
	TotalItems int64            `json:"total_items"`
	Total      int64            `json:"total_centavos"`
	TotalLabel string           `json:"total"`
}

type AddToCartInput struct {
	Identifier string
	ProductID  string
	Variant    string
}

type AdjustItemInput struct {
	Delta int64
}

// GetCart returns the session's cart; a missing session is an empty cart.
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartOutput, error) {
	if sessionID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}

	cart, err := u.carts.Get(ctx, sessionID)
	if err == repo.ErrNotFound {
		return buildCartOutput(&model.Cart{}), nil
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}
	return buildCartOutput(cart), nil
}

// AddToCart puts one unit of a catalog product in the session cart.
// The product is resolved by id from the already-fetched catalog, never
// taken from the request body.
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddToCartInput) (CartOutput, error) {
	if sessionID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid identifier")
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	sf, err := u.source.Fetch(ctx, identifier)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusBadGateway, "storefront unavailable")
	}

	p, ok := sf.FindProduct(in.ProductID)
	if !ok {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.carts.Get(ctx, sessionID)
	if err == repo.ErrNotFound {
		cart = model.NewCart(sessionID, identifier, time.Now())
	} else if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}

	cart.Slug = identifier
	cart.Add(p, strings.TrimSpace(in.Variant))

	if err := u.carts.Save(ctx, cart); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}

	u.log.WithFields(logrus.Fields{
		"session": sessionID,
		"product": p.ID,
		"items":   cart.TotalItemCount(),
	}).Debug("added to cart")

	return buildCartOutput(cart), nil
}

// AdjustItem changes a line's quantity by delta. The line is removed
// when the quantity drops to zero or below; unknown products leave the
// cart unchanged.
func (u *CartUsecase) AdjustItem(ctx context.Context, sessionID string, productID string, in AdjustItemInput) (CartOutput, error) {
	if sessionID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if strings.TrimSpace(productID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Delta == 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delta")
	}

	cart, err := u.carts.Get(ctx, sessionID)
	if err == repo.ErrNotFound {
		return buildCartOutput(&model.Cart{}), nil
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}

	cart.AdjustQuantity(productID, in.Delta)

	if err := u.carts.Save(ctx, cart); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}
	return buildCartOutput(cart), nil
}

// RemoveItem deletes a line entirely, regardless of quantity.
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, productID string) (CartOutput, error) {
	if sessionID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if strings.TrimSpace(productID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.carts.Get(ctx, sessionID)
	if err == repo.ErrNotFound {
		return buildCartOutput(&model.Cart{}), nil
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}

	cart.Remove(productID)

	if err := u.carts.Save(ctx, cart); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}
	return buildCartOutput(cart), nil
}

func buildCartOutput(cart *model.Cart) CartOutput {
	items := make([]CartItemOutput, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, CartItemOutput{
			ProductID:     l.ProductID,
			Title:         l.Title,
			Price:         l.UnitPrice,
			PriceLabel:    money.FormatBRL(l.UnitPrice),
			ImageURL:      l.ImageURL,
			Variant:       l.Variant,
			Quantity:      l.Quantity,
			Subtotal:      l.Subtotal(),
			SubtotalLabel: money.FormatBRL(l.Subtotal()),
		})
	}

	total := cart.TotalValue()
	return CartOutput{
		Items:      items,
		TotalItems: cart.TotalItemCount(),
		Total:      total,
		TotalLabel: money.FormatBRL(total),
	}
}
