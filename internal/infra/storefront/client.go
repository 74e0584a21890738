// Package storefront talks to the external storefront backend: the
// vitrine lookup endpoint and the checkout endpoint. Wire prices are
// decimal reais; everything is converted to centavos at this boundary.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"vitrine/internal/domain/model"
	"vitrine/internal/money"
	repo "vitrine/internal/repository"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Wire shapes owned by the backend.

type storeDTO struct {
	Name         string `json:"nomeLoja"`
	PrimaryColor string `json:"corPrimaria"`
	LogoURL      string `json:"logoUrl"`
	Whatsapp     string `json:"whatsapp"`
}

type variantDTO struct {
	Size string `json:"tamanho"`
}

type productDTO struct {
	ID       string          `json:"id"`
	Title    string          `json:"titulo"`
	Price    decimal.Decimal `json:"preco"`
	ImageURL string          `json:"image"`
	Variants []variantDTO    `json:"variacoes"`
}

type vitrineDTO struct {
	Store    storeDTO     `json:"loja"`
	Products []productDTO `json:"produtos"`
}

type checkoutItemDTO struct {
	ProductID string `json:"produtoId"`
	Quantity  int64  `json:"quantidade"`
	Size      string `json:"tamanho"`
}

type checkoutRequestDTO struct {
	Slug             string            `json:"slug"`
	CustomerName     string            `json:"clienteNome"`
	CustomerWhatsapp string            `json:"clienteWhatsapp"`
	Items            []checkoutItemDTO `json:"itens"`
}

type checkoutResponseDTO struct {
	OrderID int64           `json:"pedidoId"`
	Total   decimal.Decimal `json:"total"`
}

type backendErrorDTO struct {
	Error string `json:"error"`
}

// Fetch implements repository.StorefrontSource.
func (c *Client) Fetch(ctx context.Context, identifier string) (model.Storefront, error) {
	u := fmt.Sprintf("%s/loja/vitrine/dados?host=%s", c.baseURL, url.QueryEscape(identifier))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Storefront{}, errors.Wrap(err, "build vitrine request")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return model.Storefront{}, errors.Wrap(err, "fetch vitrine")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return model.Storefront{}, repo.ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return model.Storefront{}, errors.Errorf("vitrine lookup: unexpected status %d", res.StatusCode)
	}

	var dto vitrineDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return model.Storefront{}, errors.Wrap(err, "decode vitrine response")
	}

	sf := model.Storefront{
		Store: model.Store{
			Slug:         identifier,
			Name:         dto.Store.Name,
			PrimaryColor: dto.Store.PrimaryColor,
			LogoURL:      dto.Store.LogoURL,
			Whatsapp:     dto.Store.Whatsapp,
		},
		Products: make([]model.Product, 0, len(dto.Products)),
	}
	for _, p := range dto.Products {
		variants := make([]model.Variant, 0, len(p.Variants))
		for _, v := range p.Variants {
			variants = append(variants, model.Variant{Size: v.Size})
		}
		sf.Products = append(sf.Products, model.Product{
			ID:       p.ID,
			Title:    p.Title,
			Price:    money.CentavosFromDecimal(p.Price),
			ImageURL: p.ImageURL,
			Variants: variants,
		})
	}

	c.log.WithFields(logrus.Fields{
		"identifier": identifier,
		"products":   len(sf.Products),
	}).Debug("vitrine fetched")

	return sf, nil
}

// Submit implements repository.OrderSink against POST /loja/checkout.
func (c *Client) Submit(ctx context.Context, sub repo.OrderSubmission) (repo.OrderConfirmation, error) {
	items := make([]checkoutItemDTO, 0, len(sub.Items))
	for _, it := range sub.Items {
		items = append(items, checkoutItemDTO{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Variant,
		})
	}

	body, err := json.Marshal(checkoutRequestDTO{
		Slug:             sub.Slug,
		CustomerName:     sub.CustomerName,
		CustomerWhatsapp: sub.CustomerWhatsapp,
		Items:            items,
	})
	if err != nil {
		return repo.OrderConfirmation{}, errors.Wrap(err, "encode checkout request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/loja/checkout", bytes.NewReader(body))
	if err != nil {
		return repo.OrderConfirmation{}, errors.Wrap(err, "build checkout request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return repo.OrderConfirmation{}, errors.Wrap(err, "post checkout")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		var be backendErrorDTO
		if err := json.NewDecoder(res.Body).Decode(&be); err == nil && be.Error != "" {
			return repo.OrderConfirmation{}, &repo.Rejection{Message: be.Error}
		}
		return repo.OrderConfirmation{}, &repo.Rejection{Message: "Erro ao processar pedido."}
	}

	var dto checkoutResponseDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return repo.OrderConfirmation{}, errors.Wrap(err, "decode checkout response")
	}

	return repo.OrderConfirmation{
		OrderID: dto.OrderID,
		Total:   money.CentavosFromDecimal(dto.Total),
	}, nil
}
