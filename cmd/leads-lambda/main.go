package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/autocrm/leads-api/internal/attribution"
	"github.com/autocrm/leads-api/internal/config"
	"github.com/autocrm/leads-api/internal/httpapi"
	"github.com/autocrm/leads-api/internal/logger"
	"github.com/autocrm/leads-api/internal/metrics"
	"github.com/autocrm/leads-api/internal/repository"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.Configure(cfg.Logging)

	provider := metrics.Provider(&metrics.NoopProvider{})
	if cfg.Metrics.Datadog.Enabled {
		provider, err = metrics.NewDatadog(cfg.Metrics.Datadog.Addr, cfg.Metrics.Datadog.Namespace)
		if err != nil {
			log.Fatalf("metrics: %v", err)
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
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

	lambda.Start(httpapi.LambdaHandler(api.Router(provider)))
}
