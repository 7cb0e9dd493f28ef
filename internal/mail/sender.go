// Package mail abstracts outbound delivery. The API process either hands
// messages to the notifier worker through the queue or, broker-less, sends
// straight over SMTP; without either it logs the payload.
package mail

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/zoesbreath/baobab-server/internal/log"
	"github.com/zoesbreath/baobab-server/internal/queue"
)

type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMTPSender delivers directly through the configured SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return s.dialer.DialAndSend(m)
}

// QueueSender defers delivery to the notifier worker.
type QueueSender struct {
	pub queue.Publisher
}

func NewQueue(pub queue.Publisher) *QueueSender { return &QueueSender{pub: pub} }

func (s *QueueSender) Send(ctx context.Context, to, subject, html string) error {
	return s.pub.Publish(ctx, queue.KeyMailRequested, queue.MailRequested{
		To: to, Subject: subject, HTML: html,
	}, "")
}

// LogSender is the dev fallback: the message lands in the log only.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, html string) error {
	log.L().Info("mail (not sent)",
		zap.String("to", to), zap.String("subject", subject), zap.String("html", html))
	return nil
}
