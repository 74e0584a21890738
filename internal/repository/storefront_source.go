package repository

import (
	"context"

	"vitrine/internal/domain/model"
)

// StorefrontSource supplies store branding and the product list for an
// identifier (slug or hostname). The catalog is owned by the external
// storefront backend; this service only reads it.
type StorefrontSource interface {
	// Fetch returns the storefront, or ErrNotFound when the backend
	// does not know the identifier.
	Fetch(ctx context.Context, identifier string) (model.Storefront, error)
}

// OrderSubmission is the payload the backend checkout endpoint accepts.
type OrderSubmission struct {
	Slug             string
	CustomerName     string
	CustomerWhatsapp string
	Items            []model.CartSnapshotLine
}

// OrderConfirmation is what the backend returns on success.
// Total is in centavos.
type OrderConfirmation struct {
	OrderID int64
	Total   int64
}

// OrderSink accepts a finalized order. The backend flow posts to the
// storefront checkout endpoint; rejections carry the backend's own
// error message.
type OrderSink interface {
	Submit(ctx context.Context, sub OrderSubmission) (OrderConfirmation, error)
}

// Rejection is a checkout the backend refused (e.g. out of stock).
// Message is surfaced to the shopper verbatim.
type Rejection struct {
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}
