package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	appconfig "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/config"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/logger"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/metrics"
	itemlister "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/item-lister"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading aws config failed")
	}

	settings, err := appconfig.Load(ctx, os.LookupEnv, ssm.NewFromConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("loading settings failed")
	}

	recorder, err := metrics.NewStatsd(settings.StatsdAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("creating statsd client failed")
	}

	handler := &itemlister.Handler{
		Store: &itemstore.Store{
			Client:    dynamodb.NewFromConfig(cfg),
			TableName: settings.TableName,
		},
		CORS:    settings.CORS(),
		Metrics: recorder,
		Logger:  logger.Configure(settings.LogLevel, settings.LogFormat),
	}

	lambda.Start(handler.Handle)
}
