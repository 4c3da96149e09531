// Package ses sends workflow emails through AWS SESv2.
package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"docflow/internal/config"
	"docflow/internal/port"
)

type sender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSender creates an SESv2-backed EmailSender using the default AWS
// credential chain.
func NewSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &sender{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}, nil
}

func (s *sender) SendFinalApprovalEmail(ctx context.Context, toEmail, toName, documentNumber, title string) error {
	subject := fmt.Sprintf("Document %s approved", documentNumber)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour document %s (%q) has received final approval.\n\nThis is an automated message.",
		toName, documentNumber, title)
	return s.send(ctx, toEmail, subject, body)
}

func (s *sender) SendPublicationEmail(ctx context.Context, toEmail, toName, documentNumber, title string) error {
	subject := fmt.Sprintf("Document %s published", documentNumber)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour document %s (%q) has been published.\n\nThis is an automated message.",
		toName, documentNumber, title)
	return s.send(ctx, toEmail, subject, body)
}

func (s *sender) send(ctx context.Context, toEmail, subject, body string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &body},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sesSender.send: %w", err)
	}
	return nil
}
