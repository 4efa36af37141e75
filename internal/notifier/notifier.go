package notifier

import (
	"context"
	"fmt"

	"github.com/vasapolrittideah/auth-api/internal/mailer"
)

// Notifier dispatches out-of-band notifications to users.
type Notifier interface {
	// SendPasswordResetLink delivers a reset link to the given address.
	SendPasswordResetLink(ctx context.Context, email, resetLink string) error
}

// EmailEnqueuer queues an email for asynchronous delivery.
type EmailEnqueuer interface {
	Enqueue(ctx context.Context, email mailer.Email) error
}

type emailNotifier struct {
	queue EmailEnqueuer
}

// NewEmailNotifier creates a Notifier that dispatches through the email queue.
func NewEmailNotifier(queue EmailEnqueuer) Notifier {
	return &emailNotifier{queue: queue}
}

func (n *emailNotifier) SendPasswordResetLink(ctx context.Context, email, resetLink string) error {
	body := fmt.Sprintf(
		"You requested a password reset. Click the link to reset your password: %s\n"+
			"This link is only valid for the next 10 minutes!",
		resetLink,
	)

	return n.queue.Enqueue(ctx, mailer.Email{
		To:      []string{email},
		Subject: "Password Reset",
		Body:    body,
	})
}
