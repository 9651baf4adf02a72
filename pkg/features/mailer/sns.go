package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type SnsApiClient interface {
	Publish(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender publishes messages to a topic. Each email subscription carries a
// filter policy on the "email" attribute so only its owner receives the message.
type SNSSender struct {
	Client   SnsApiClient
	TopicArn string
}

func (s *SNSSender) Send(ctx context.Context, message Message) error {
	if _, err := s.Client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.TopicArn),
		Subject:  aws.String(message.Subject),
		Message:  aws.String(message.Body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"email": {
				DataType:    aws.String("String"),
				StringValue: aws.String(message.To),
			},
		},
	}); err != nil {
		return fmt.Errorf("mailer: sns publish for %s failed: %w", message.To, err)
	}

	return nil
}
