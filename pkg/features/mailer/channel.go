package mailer

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// New builds the sender for channel "ses" or "sns".
func New(cfg aws.Config, channel, from, topicArn string) (Sender, error) {
	switch channel {
	case "ses":
		return &SESSender{Client: sesv2.NewFromConfig(cfg), From: from}, nil
	case "sns":
		return &SNSSender{Client: sns.NewFromConfig(cfg), TopicArn: topicArn}, nil
	default:
		return nil, fmt.Errorf("mailer: unknown channel %q", channel)
	}
}
