package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vitrine/internal/middleware"
	"vitrine/internal/usecase"
)

// HTTP surface of the session cart.
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	Identifier string `json:"loja"`
	ProductID  string `json:"produto_id"`
	Variant    string `json:"tamanho"`
}

type AdjustCartItemRequest struct {
	Delta int64 `json:"delta"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.PATCH("/:produtoId", h.adjustItem)
	g.DELETE("/:produtoId", h.removeItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddToCart(c.Request().Context(), sessionID, usecase.AddToCartInput{
		Identifier: req.Identifier,
		ProductID:  req.ProductID,
		Variant:    req.Variant,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) adjustItem(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	var req AdjustCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdjustItem(c.Request().Context(), sessionID, c.Param("produtoId"), usecase.AdjustItemInput{
		Delta: req.Delta,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), sessionID, c.Param("produtoId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
