package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafenine/config"
	httpapi "cafenine/storefront-svc/internal/api/http"
	"cafenine/storefront-svc/internal/service"
	"cafenine/storefront-svc/internal/storage"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront-svc",
	Short: "Cafe Nine storefront state service",
	Long:  `storefront-svc keeps carts, accounts, menu and operations data for the Cafe Nine site and serves them over HTTP.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the shared roster and catalog keys so the next start reseeds them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		kv, closeKV := openStore(cmd.Context(), cfg)
		defer closeKV()
		for _, key := range storage.SharedKeys() {
			if err := kv.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
			log.Printf("[storefront-svc] deleted %s", key)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (env variables override it)")
	rootCmd.AddCommand(serveCmd, resetCmd)
}

// openStore picks the key-value backend named in cfg. The returned func releases
// any connection it opened.
func openStore(ctx context.Context, cfg *config.Config) (storage.KeyValueStore, func()) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rdb := config.MustInitRedis(cfg)
		log.Printf("[storefront-svc] using redis store at %s", cfg.RedisAddr())
		return storage.NewRedisStore(rdb), func() { rdb.Close() }
	case config.BackendPostgres:
		db := config.MustInitPostgres(cfg)
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		log.Printf("[storefront-svc] using postgres store %s@%s", cfg.DBName, cfg.DBHost)
		return store, func() { db.Close() }
	default:
		log.Println("[storefront-svc] using in-memory store, data is lost on restart")
		return storage.NewMemoryStore(), func() {}
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV := openStore(ctx, cfg)
	defer closeKV()

	var publisher service.EventPublisher = storage.NopPublisher{}
	if cfg.KafkaEnabled {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		log.Printf("[storefront-svc] publishing events to %s on %s", cfg.KafkaOrdersTopic, cfg.KafkaBroker)
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	roster, err := service.SeedRoster(hasher, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}

	accounts := service.NewAccounts(ctx, kv, hasher, roster)
	defer accounts.Close()
	catalog := service.NewCatalogService(ctx, kv, service.DefaultSeed())
	checkout := service.NewCheckoutService(catalog, publisher)
	qr := service.ReceiptQRGenerator{BaseURL: cfg.PublicBaseURL}

	handler := httpapi.NewHandler(service.NewCarts(kv), accounts, catalog, checkout, qr)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Storefront Service starting on %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[storefront-svc] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
