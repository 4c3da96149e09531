package port

import "context"

// EmailSender defines the contract for courtesy emails on workflow milestones.
type EmailSender interface {
	SendFinalApprovalEmail(ctx context.Context, toEmail, toName, documentNumber, title string) error
	SendPublicationEmail(ctx context.Context, toEmail, toName, documentNumber, title string) error
}
