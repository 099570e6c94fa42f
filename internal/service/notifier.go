package service

import (
	"context"
	"fmt"

	"eventreg-request-service/internal/config"
	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is the part of the SendGrid client the notifier uses.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridNotifier struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewNotifier builds the notifier selected by cfg.Provider.
func NewNotifier(cfg config.NotificationConfig) Notifier {
	if cfg.Provider == "sendgrid" {
		return newSendGridNotifier(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg.FromEmail, cfg.FromName)
	}
	return noopNotifier{}
}

func newSendGridNotifier(client mailSender, fromEmail, fromName string) *sendGridNotifier {
	return &sendGridNotifier{client: client, fromEmail: fromEmail, fromName: fromName}
}

func (n *sendGridNotifier) NotifyDecision(ctx context.Context, to *domain.User, req domain.Request) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	recipient := mail.NewEmail(to.Name, to.Email)

	subject := fmt.Sprintf("Your request for event %d was %s", req.EventID, decisionWord(req.Status))
	plainText := fmt.Sprintf("Hello %s,\n\nYour participation request %s for event %d is now %s.\n", to.Name, req.ID, req.EventID, req.Status)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your participation request for event %d is now <strong>%s</strong>.</p>", to.Name, req.EventID, req.Status)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)
	response, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.WithService("sendgrid").Debug("Decision notification sent", "request_id", req.ID, "to", to.Email)
	return nil
}

func decisionWord(status domain.RequestStatus) string {
	if status == domain.RequestStatusConfirmed {
		return "confirmed"
	}
	return "declined"
}

type noopNotifier struct{}

func (noopNotifier) NotifyDecision(ctx context.Context, to *domain.User, req domain.Request) error {
	return nil
}
