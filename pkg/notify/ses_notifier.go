package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"shipping-rates/pkg/logger"
)

// SESNotifier emails notices to the store owner using AWS SES v2.
type SESNotifier struct {
	client    *sesv2.Client
	fromEmail string
	toEmail   string
	log       *logger.Logger
}

// NewSESNotifier creates a notifier for Amazon SES. Credentials are loaded
// from the environment.
func NewSESNotifier(ctx context.Context, region, fromEmail, toEmail string, log *logger.Logger) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &SESNotifier{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		toEmail:   toEmail,
		log:       log,
	}, nil
}

// Notify sends the notice as a plain-text email.
func (n *SESNotifier) Notify(ctx context.Context, subject, message string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: &n.fromEmail,
		Destination: &types.Destination{
			ToAddresses: []string{n.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    &subject,
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    &message,
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		n.log.Error("failed to send operator notice via SES", "error", err)
		return err
	}
	return nil
}
