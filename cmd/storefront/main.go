package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/cart"
	"github.com/tracketo/storefront/internal/catalog"
	"github.com/tracketo/storefront/internal/checkout"
	"github.com/tracketo/storefront/internal/config"
	"github.com/tracketo/storefront/internal/order"
	"github.com/tracketo/storefront/internal/session"
	"github.com/tracketo/storefront/internal/storage"
	"github.com/tracketo/storefront/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	store, err := storage.OpenBolt(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()

	catalogSvc := catalog.NewService(store, cfg.Mock.Latency)
	orderSvc := order.NewService(store, cfg.Mock.Latency)
	sess := session.New(store, cfg.Mock.Latency)
	shoppingCart := cart.New(store)
	checkoutSvc := checkout.NewService(shoppingCart, orderSvc, sess)

	// Identity and cart must be restored before any request branches on them.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	if _, err := sess.Restore(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to restore session")
	}
	if _, err := shoppingCart.Restore(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to restore cart")
	}

	router := transport.NewRouter(transport.Deps{
		Catalog:  catalogSvc,
		Orders:   orderSvc,
		Cart:     shoppingCart,
		Session:  sess,
		Checkout: checkoutSvc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
