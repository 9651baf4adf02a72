package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	appconfig "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/config"
	preflightresponder "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/preflight-responder"
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

	handler := &preflightresponder.Handler{CORS: settings.CORS()}

	lambda.Start(handler.Handle)
}
