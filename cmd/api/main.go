package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"vitrine/internal/config"
	"vitrine/internal/handler"
	"vitrine/internal/infra/cartstore"
	"vitrine/internal/infra/storefront"
	repo "vitrine/internal/repository"
	"vitrine/internal/server"
	"vitrine/internal/usecase"
)

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	}
	log.Out = os.Stdout

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	log.Level = lv
	return log
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := newLogger(cfg.LogLevel)

	// Storefront backend client, cached.
	client := storefront.NewClient(cfg.StorefrontAPIBase, cfg.CheckoutTimeout, log)
	source := storefront.NewCachedSource(client, cfg.CatalogCacheTTL, log)

	// Session cart store: Redis when configured, memory otherwise.
	var carts repo.CartStore
	if cfg.RedisAddr != "" {
		rs, err := cartstore.NewRedisCartStore(cfg.RedisAddr, cfg.SessionTTL, log)
		if err != nil {
			log.WithError(err).Fatal("redis cart store")
		}
		carts = rs
		log.WithField("addr", cfg.RedisAddr).Info("using redis cart store")
	} else {
		carts = cartstore.NewLocalCartStore(cfg.SessionTTL)
		log.Info("using in-memory cart store")
	}

	vitrineUC := usecase.NewVitrineUsecase(source)
	cartUC := usecase.NewCartUsecase(carts, source, log)
	checkoutUC := usecase.NewCheckoutUsecase(
		carts,
		source,
		client,
		usecase.CheckoutMode(cfg.CheckoutMode),
		cfg.CheckoutTimeout,
		log,
	)

	vitrineH := handler.NewVitrineHandler(vitrineUC)
	cartH := handler.NewCartHandler(cartUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)

	e := server.New(log, cfg.SessionTTL, carts, vitrineH, cartH, checkoutH)

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{
		"addr": addr,
		"mode": cfg.CheckoutMode,
		"env":  cfg.GoEnv,
	}).Info("vitrine gateway listening")

	if err := server.Start(e, addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
