package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"vitrine/internal/handler"
	"vitrine/internal/middleware"
	repo "vitrine/internal/repository"
)

// New builds the echo instance with middleware and all routes wired.
func New(
	log *logrus.Logger,
	sessionTTL time.Duration,
	carts repo.CartStore,
	vitrineH *handler.VitrineHandler,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Session(sessionTTL))
	e.Use(middleware.RequestLog(log))

	vitrineH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
	checkoutH.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		if !carts.Ping(c.Request().Context()) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "cart store unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

// Start blocks serving HTTP on addr.
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
