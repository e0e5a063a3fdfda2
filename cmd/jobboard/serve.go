package main

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/listing"
	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/payment"
	"github.com/jonathan/jobboard/internal/posting"
	"github.com/jonathan/jobboard/internal/server"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveMigrate bool
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the listing, checkout and payment webhook endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending schema migrations before serving")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print the effective configuration on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if serveVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintConfig(cfg)
	}

	if serveMigrate {
		if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info("schema migrations applied")
	}

	store, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	gateway, err := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	if err != nil {
		return err
	}

	m := metrics.New()
	listings := listing.NewService(store, log.With(logger.String("component", "listing")), m)
	submitter := posting.NewSubmitter(store, gateway, posting.SubmitterConfig{
		SiteURL:  cfg.SiteURL,
		Currency: cfg.Currency,
	}, log.With(logger.String("component", "submission")), m)
	confirmer := posting.NewConfirmer(store, gateway, cfg.FeaturedDuration,
		log.With(logger.String("component", "confirmation")), m)

	srv, err := server.New(cfg.Port, server.Deps{
		Listings:  listings,
		Submitter: submitter,
		Confirmer: confirmer,
		Store:     store,
		Logger:    log,
		Metrics:   m,
		RateLimit: ratelimit.LoadConfig(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
