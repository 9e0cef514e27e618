package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cafenine/api-gateway/internal/gateway"
	"cafenine/config"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "api-gateway",
	Short: "Cafe Nine edge: static frontend plus API routing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		gw := gateway.NewGateway(gateway.Config{
			StorefrontSvcURL: cfg.StorefrontSvcURL,
			InsightsSvcURL:   cfg.InsightsSvcURL,
			StaticDir:        cfg.StaticDir,
		}, &http.Client{Timeout: 30 * time.Second})

		c := cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Client-ID"},
		})

		srv := &http.Server{
			Addr:              cfg.GatewayHTTPAddr,
			Handler:           c.Handler(gw.SetupRoutes()),
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Printf("API Gateway starting on %s", cfg.GatewayHTTPAddr)
		return srv.ListenAndServe()
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (env variables override it)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
