// Package noop logs emails instead of sending them, for development and
// tests.
package noop

import (
	"context"
	"log"

	"docflow/internal/port"
)

type sender struct{}

// NewSender returns an EmailSender that only logs.
func NewSender() port.EmailSender {
	return sender{}
}

func (sender) SendFinalApprovalEmail(_ context.Context, toEmail, _, documentNumber, _ string) error {
	log.Printf("noopSender: would send final approval email for %s to %s", documentNumber, toEmail)
	return nil
}

func (sender) SendPublicationEmail(_ context.Context, toEmail, _, documentNumber, _ string) error {
	log.Printf("noopSender: would send publication email for %s to %s", documentNumber, toEmail)
	return nil
}
