package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	appconfig "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/config"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/devserver"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/logger"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/mailer"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/metrics"
	expirynotifier "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/expiry-notifier"
	itemlister "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/item-lister"
	itemsaver "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/item-saver"
	preflightresponder "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/preflight-responder"
)

// Runs every handler against real AWS services, or local emulators when
// AWS_ENDPOINT_URL points at one.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading aws config failed")
	}

	settings, err := appconfig.Load(ctx, os.LookupEnv, ssm.NewFromConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("loading settings failed")
	}

	root := logger.Configure(settings.LogLevel, settings.LogFormat)

	if err := settings.ValidateNotifications(); err != nil {
		root.Fatal().Err(err).Msg("invalid notification settings")
	}

	sender, err := mailer.New(cfg, settings.NotificationChannel, settings.SenderAddress, settings.TopicArn)
	if err != nil {
		root.Fatal().Err(err).Msg("creating sender failed")
	}

	recorder, err := metrics.NewStatsd(settings.StatsdAddress)
	if err != nil {
		root.Fatal().Err(err).Msg("creating statsd client failed")
	}

	store := &itemstore.Store{
		Client:    dynamodb.NewFromConfig(cfg),
		TableName: settings.TableName,
	}
	policy := settings.CORS()

	lister := &itemlister.Handler{Store: store, CORS: policy, Metrics: recorder, Logger: root}
	saver := &itemsaver.Handler{Store: store, Sender: sender, CORS: policy, Metrics: recorder, Logger: root}
	notifier := &expirynotifier.Handler{Store: store, Sender: sender, Metrics: recorder, Logger: root}
	preflight := &preflightresponder.Handler{CORS: policy}

	router := devserver.NewRouter(devserver.Routes{
		ListItems:    lister.Handle,
		SaveItem:     saver.Handle,
		Preflight:    preflight.Handle,
		RunReminders: devserver.Scheduled(notifier.Handle, time.Now),
		Logger:       root,
	})

	addr := os.Getenv("DEV_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		root.Info().Str("addr", addr).Str("table", settings.TableName).Msg("starting dev server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			root.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		root.Error().Err(err).Msg("failed to shutdown http server")
	}
}
