package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vitrine/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// Public /vitrine API: store branding + product list.
type VitrineHandler struct {
	uc *usecase.VitrineUsecase
}

// DI
func NewVitrineHandler(uc *usecase.VitrineUsecase) *VitrineHandler {
	return &VitrineHandler{uc: uc}
}

func (h *VitrineHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/vitrine/:identifier", h.get)
}

func (h *VitrineHandler) get(c echo.Context) error {
	out, err := h.uc.GetVitrine(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
