package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/checkout"
	"github.com/noah-isme/farmer-shop/internal/config"
	"github.com/noah-isme/farmer-shop/internal/obs"
	"github.com/noah-isme/farmer-shop/internal/session"
	"github.com/noah-isme/farmer-shop/internal/terminal"
)

func main() {
	cfg := config.MustLoad()

	logger := obs.NewLogger(obs.LoggerConfig{
		Format:  "console",
		Level:   cfg.Obs.LogLevel,
		Service: "shop",
		Env:     cfg.AppEnv,
		Out:     os.Stderr,
	})

	shop := session.New(session.Config{
		Source:  catalog.NewHTTPClient(cfg.CatalogURL),
		TaxRate: cfg.TaxRate,
		Vendor:  cfg.VendorName,
		Printer: checkout.FilePrinter{Dir: cfg.InvoiceDir, Logger: logger},
		Logger:  &logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = shop.LoadCatalog(ctx)

	shell := &terminal.Shell{Session: shop, In: os.Stdin, Out: os.Stdout}
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal().Err(err).Msg("terminal session")
	}
}
