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
	httpapi "cafenine/insights-svc/internal/api/http"
	"cafenine/insights-svc/internal/service"
	"cafenine/insights-svc/internal/storage"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "insights-svc",
	Short: "Cafe Nine popularity rankings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (env variables override it)")
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()
	store := storage.NewStore(rdb)

	if cfg.KafkaEnabled {
		reader := config.NewKafkaReader(cfg)
		defer reader.Close()
		go service.NewConsumer(reader, store).Start(ctx)
	} else {
		log.Println("[insights-svc] KAFKA_ENABLED is false, rankings will not change")
	}

	handler := httpapi.NewHandler(service.NewInsightsService(store))
	srv := &http.Server{
		Addr:              cfg.InsightsHTTPAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Insights Service starting on %s", cfg.InsightsHTTPAddr)
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
