package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vitrine/internal/middleware"
	"vitrine/internal/usecase"
)

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	Identifier       string `json:"loja"`
	CustomerName     string `json:"cliente_nome"`
	CustomerWhatsapp string `json:"cliente_whatsapp"`
}

type CheckoutStatusResponse struct {
	Busy bool `json:"busy"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkout", h.submit)
	e.GET("/checkout/status", h.status)
}

func (h *CheckoutHandler) submit(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Submit(c.Request().Context(), sessionID, usecase.SubmitInput{
		Identifier:       req.Identifier,
		CustomerName:     req.CustomerName,
		CustomerWhatsapp: req.CustomerWhatsapp,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// status exposes the single-flight busy signal so the page can keep
// the checkout button disabled across reloads.
func (h *CheckoutHandler) status(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}
	return c.JSON(http.StatusOK, CheckoutStatusResponse{Busy: h.uc.Busy(sessionID)})
}
