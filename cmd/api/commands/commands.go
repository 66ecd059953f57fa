package commands

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shopfront/core/internal/adapters/repository"
	"github.com/shopfront/core/internal/application/services"
	"github.com/shopfront/core/internal/domain/entities"
	"github.com/shopfront/core/internal/infrastructure/config"
	"github.com/shopfront/core/internal/infrastructure/logger"
	"github.com/shopfront/core/internal/infrastructure/server"
	"github.com/shopfront/core/internal/infrastructure/storage"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Shopfront API server",
		Long:  "Start the Shopfront API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewSeedCommand creates the seed command, which bootstraps the catalog file
// with a small sample so a fresh storefront has something to display.
func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a sample product catalog",
		Long:  "Initialize the configured catalog file with a handful of sample products. Existing records with the same ids are replaced.",
		Run: func(cmd *cobra.Command, args []string) {
			seedCatalog()
		},
	}
	return seedCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Shopfront version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Println("Shopfront Core (unknown version)")
				return
			}
			fmt.Printf("Shopfront Core v%s\n", cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	store, err := storage.New(cfg.Store)
	if err != nil {
		appLogger.Fatal("Failed to open product store", "error", err)
	}

	srv, err := server.New(cfg, store, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting Shopfront API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store", cfg.Store.Path,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(cfg.Server.Address()); err != nil {
			appLogger.Info("Server stopped", "reason", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
}

func seedCatalog() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	store, err := storage.New(cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open product store: %v", err)
	}

	productRepo, err := repository.NewProductRepository(store, cfg.Store, appLogger)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	productService := services.NewProductService(productRepo, appLogger)

	samples := []*entities.Product{
		{
			ID:          "posture-corrector-pro",
			Name:        "Posture Corrector Pro",
			Description: "Adjustable back brace that straightens your posture within weeks of daily wear.",
			Category:    "health",
			Features:    []string{"Breathable mesh", "Adjustable straps", "Fits under clothing"},
			Price:       "£19.99",
		},
		{
			ID:          "ledstrip-smart-5m",
			Name:        "Smart LED Strip 5m",
			Description: "App-controlled colour LED strip with music sync and timer modes.",
			Category:    "home",
			Features:    []string{"16M colours", "Music sync", "Voice assistant support"},
			Price:       "£12.99",
		},
		{
			ID:          "mini-chopper-usb",
			Name:        "USB Mini Food Chopper",
			Description: "Rechargeable portable chopper for garlic, chili and herbs.",
			Category:    "kitchen",
			Features:    []string{"USB-C charging", "One-button operation", "Detachable blades"},
			Price:       "£9.99",
		},
	}

	for _, p := range samples {
		if _, err := productService.UpsertProduct(context.Background(), p); err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.ID, err)
		}
	}

	fmt.Printf("Seeded %d products into %s\n", len(samples), cfg.Store.Path)
}
