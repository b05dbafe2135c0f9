package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/autocrm/leads-api/internal/attribution"
	"github.com/autocrm/leads-api/internal/config"
	"github.com/autocrm/leads-api/internal/httpapi"
	"github.com/autocrm/leads-api/internal/logger"
	"github.com/autocrm/leads-api/internal/metrics"
	"github.com/autocrm/leads-api/internal/repository"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to the service configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.Configure(cfg.Logging)

	provider, err := setupMetrics(cfg.Metrics)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
		}
	})

	clients := repository.NewClientRepository(client, cfg.Tables.Clients)
	vendedores := repository.NewVendedorRepository(client, cfg.Tables.Vendedores)
	eventsRepo := repository.NewEventRepository(client, cfg.Tables.Events)
	messages := repository.NewMessageRepository(client, cfg.Tables.Messages)

	engine := attribution.New(clients, vendedores, eventsRepo, logg, provider)
	api := httpapi.New(clients, vendedores, eventsRepo, messages, engine, logg)

	addr := fmt.Sprintf(":%d", cfg.Service.Port)
	logg.Info().Str("addr", addr).Str("service", cfg.Service.Name).Msg("http server listening")

	if err := http.ListenAndServe(addr, api.Router(provider)); err != nil {
		logg.Fatal().Err(err).Msg("http server stopped")
	}
}

func setupMetrics(cfg config.MetricsConf) (metrics.Provider, error) {
	if !cfg.Datadog.Enabled {
		return &metrics.NoopProvider{}, nil
	}
	return metrics.NewDatadog(cfg.Datadog.Addr, cfg.Datadog.Namespace)
}
