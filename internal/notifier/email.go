// Package notifier delivers payment-completed messages to catering boys over
// SMTP. When no credentials are configured it degrades to logging only,
// which keeps local development working without a mail account.
package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/eventcrew/catering-api/internal/config"
)

type EmailNotifier struct {
	conf    *config.SMTPConfig
	devMode bool
}

func NewEmailNotifier(conf *config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		conf:    conf,
		devMode: conf.Username == "" || conf.Password == "",
	}
}

func (n *EmailNotifier) PaymentCompleted(ctx context.Context, to, name, eventTitle string, amount int) error {
	subject := "Payment Successful"
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have received a payment of %d for the event: %s.\n\nThank you for your work!\n",
		name, amount, eventTitle,
	)

	if n.devMode {
		zap.L().Info("dev mode, skipping email delivery",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + n.conf.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", n.conf.Username, n.conf.Password, n.conf.Host)
	addr := n.conf.Host + ":" + n.conf.Port

	if err := smtp.SendMail(addr, auth, n.conf.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}

	return nil
}
