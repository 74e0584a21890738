package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vitrine/internal/domain/model"
	"vitrine/internal/money"
	repo "vitrine/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// VitrineUsecase serves the storefront lookup: branding plus catalog
// for a store identifier (slug or hostname).
type VitrineUsecase struct {
	source repo.StorefrontSource
}

// DI
func NewVitrineUsecase(source repo.StorefrontSource) *VitrineUsecase {
	return &VitrineUsecase{source: source}
}

type ProductOutput struct {
	ID         string          `json:"id"`
	Title      string          `json:"titulo"`
	Price      int64           `json:"preco_centavos"`
	PriceLabel string          `json:"preco"`
	ImageURL   string          `json:"image,omitempty"`
	Variants   []model.Variant `json:"variacoes,omitempty"`
}

type VitrineOutput struct {
	Store    model.Store     `json:"loja"`
	Products []ProductOutput `json:"produtos"`
}

func (u *VitrineUsecase) GetVitrine(ctx context.Context, identifier string) (VitrineOutput, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return VitrineOutput{}, NewHTTPError(http.StatusBadRequest, "invalid identifier")
	}

	sf, err := u.source.Fetch(ctx, identifier)
	if err == repo.ErrNotFound {
		return VitrineOutput{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return VitrineOutput{}, NewHTTPError(http.StatusBadGateway, "storefront unavailable")
	}

	out := VitrineOutput{
		Store:    sf.Store,
		Products: make([]ProductOutput, 0, len(sf.Products)),
	}
	for _, p := range sf.Products {
		out.Products = append(out.Products, ProductOutput{
			ID:         p.ID,
			Title:      p.Title,
			Price:      p.Price,
			PriceLabel: money.FormatBRL(p.Price),
			ImageURL:   p.ImageURL,
			Variants:   p.Variants,
		})
	}
	return out, nil
}
