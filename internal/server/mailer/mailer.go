// Package mailer handles outbound notification mail. Delivery is
// best-effort and fully detached from request flows: services enqueue a
// message onto a bounded queue and return immediately; a background worker
// owns delivery, and failures are logged, never surfaced to callers.
package mailer

import "context"

// Mail is a single outbound message.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message synchronously. Implementations are only
// ever called from the background worker.
type Sender interface {
	Send(ctx context.Context, m Mail) error
}

// Queue is what services see: fire-and-forget enqueueing.
type Queue interface {
	// Enqueue hands a message to the background worker without blocking.
	// When the queue is saturated the message is dropped (at-most-once,
	// best-effort delivery).
	Enqueue(m Mail)
}

// ResetPasswordMail builds the password-reset message for a given reset
// link. The link carries the bearer token; the body must never be logged.
func ResetPasswordMail(to, resetLink string) Mail {
	return Mail{
		To:      to,
		Subject: "Password Reset Request",
		Body: "You have requested to reset your password. Click the link below to reset your password:\n\n" +
			resetLink + "\n\nIf you didn't request this, please ignore this email.",
	}
}

// WelcomeMail builds the greeting sent after account creation.
func WelcomeMail(to, fullName string) Mail {
	return Mail{
		To:      to,
		Subject: "Welcome to WhoEstate!",
		Body: "Hello " + fullName + ",\n\nWelcome to WhoEstate! We're glad to have you on board.\n\n" +
			"Best regards,\nThe WhoEstate Team",
	}
}

// ContactNotificationMail builds the notification sent to the office when a
// visitor submits the contact form.
func ContactNotificationMail(to, message string) Mail {
	return Mail{
		To:      to,
		Subject: "New Contact Request",
		Body:    "You have received a new contact request:\n\n" + message,
	}
}
