// Package config loads deployment settings from the environment with optional
// overrides kept in SSM Parameter Store.
package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
)

const (
	ChannelSES = "ses"
	ChannelSNS = "sns"
)

type Config struct {
	TableName           string `validate:"required"`
	SenderAddress       string `validate:"required_if=NotificationChannel ses"`
	AllowedOrigin       string `validate:"required"`
	AllowedMethods      string `validate:"required"`
	AllowedHeaders      string `validate:"required"`
	PreflightMethods    string `validate:"required"`
	NotificationChannel string `validate:"oneof=ses sns"`
	TopicArn            string `validate:"required_if=NotificationChannel sns"`
	LogLevel            string
	LogFormat           string `validate:"oneof=json console"`
	StatsdAddress       string
	ParameterPath       string
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	policy := cors.Permissive()

	return Config{
		TableName:           "GroceryItems",
		AllowedOrigin:       policy.AllowOrigin,
		AllowedMethods:      policy.AllowMethods,
		AllowedHeaders:      policy.AllowHeaders,
		PreflightMethods:    policy.PreflightMethods,
		NotificationChannel: ChannelSES,
		LogLevel:            "info",
		LogFormat:           "json",
	}
}

// fields maps every recognised variable name to the setting it fills.
func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"DYNAMO_TABLE_NAME":     &c.TableName,
		"SENDER_ADDRESS":        &c.SenderAddress,
		"ALLOWED_ORIGIN":        &c.AllowedOrigin,
		"ALLOWED_METHODS":       &c.AllowedMethods,
		"ALLOWED_HEADERS":       &c.AllowedHeaders,
		"PREFLIGHT_METHODS":     &c.PreflightMethods,
		"NOTIFICATION_CHANNEL":  &c.NotificationChannel,
		"SNS_TOPIC_ARN":         &c.TopicArn,
		"LOG_LEVEL":             &c.LogLevel,
		"LOG_FORMAT":            &c.LogFormat,
		"DD_DOGSTATSD_ADDR":     &c.StatsdAddress,
		"CONFIG_PARAMETER_PATH": &c.ParameterPath,
	}
}

func (c *Config) set(name, value string) bool {
	field, ok := c.fields()[name]
	if !ok || value == "" {
		return false
	}
	*field = value
	return true
}

// FromEnv applies every non-empty variable found by lookup on top of Defaults.
// Pass os.LookupEnv in production.
func FromEnv(lookup func(string) (string, bool)) Config {
	c := Defaults()
	for name := range c.fields() {
		if value, ok := lookup(name); ok {
			c.set(name, value)
		}
	}
	return c
}

type SsmApiClient interface {
	GetParametersByPath(context.Context, *ssm.GetParametersByPathInput, ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// ApplyParameters overrides settings with the parameters stored directly under
// prefix. A parameter named <prefix>/SENDER_ADDRESS replaces SENDER_ADDRESS,
// unknown names are ignored. SecureString values are decrypted.
func (c *Config) ApplyParameters(ctx context.Context, client SsmApiClient, prefix string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("config: reading parameters under %s failed: %w", prefix, err)
		}
		for _, parameter := range page.Parameters {
			c.set(path.Base(aws.ToString(parameter.Name)), aws.ToString(parameter.Value))
		}
	}

	return nil
}

var validate = validator.New()

// Validate checks the settings every function needs.
func (c Config) Validate() error {
	if err := validate.StructExcept(c, "SenderAddress", "TopicArn"); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ValidateNotifications additionally checks that the chosen notification
// channel has its address or topic set.
func (c Config) ValidateNotifications() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads the environment, applies SSM overrides when CONFIG_PARAMETER_PATH
// is set and validates the result.
func Load(ctx context.Context, lookup func(string) (string, bool), client SsmApiClient) (Config, error) {
	c := FromEnv(lookup)

	if c.ParameterPath != "" {
		if err := c.ApplyParameters(ctx, client, c.ParameterPath); err != nil {
			return Config{}, err
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) CORS() cors.Policy {
	policy := cors.Permissive()
	policy.AllowOrigin = c.AllowedOrigin
	policy.AllowMethods = c.AllowedMethods
	policy.AllowHeaders = c.AllowedHeaders
	policy.PreflightMethods = c.PreflightMethods
	return policy
}
