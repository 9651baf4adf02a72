package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type SESApiClient interface {
	SendEmail(context.Context, *sesv2.SendEmailInput, ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender sends messages from a verified SES identity.
type SESSender struct {
	Client SESApiClient
	From   string
}

func (s *SESSender) Send(ctx context.Context, message Message) error {
	if _, err := s.Client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.From),
		Destination: &types.Destination{
			ToAddresses: []string{message.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(message.Subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(message.Body)},
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("mailer: ses send to %s failed: %w", message.To, err)
	}

	return nil
}
