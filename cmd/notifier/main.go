package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/zoesbreath/baobab-server/internal/config"
	"github.com/zoesbreath/baobab-server/internal/log"
	"github.com/zoesbreath/baobab-server/internal/mail"
	"github.com/zoesbreath/baobab-server/internal/metrics"
	"github.com/zoesbreath/baobab-server/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if _, err := log.Init(!cfg.Debug); err != nil {
		panic(err)
	}
	defer log.Sync()

	metrics.MustRegister()

	cons, err := queue.NewMailConsumer(cfg.RabbitURL, cfg.RabbitExchange,
		cfg.MailQueue, cfg.MailBindKey, cfg.MailPrefetch)
	if err != nil {
		log.L().Fatal("rabbit consumer init", zap.Error(err))
	}
	defer cons.Close()

	var sender mail.Sender = mail.LogSender{}
	if cfg.SMTPHost != "" {
		sender = mail.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPSender)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.L().Info("notifier up",
		zap.String("exchange", cfg.RabbitExchange),
		zap.String("queue", cfg.MailQueue),
		zap.String("key", cfg.MailBindKey),
		zap.Int("workers", cfg.MailWorkers),
		zap.Int("prefetch", cfg.MailPrefetch))

	if err := cons.Consume(ctx, cfg.MailWorkers, func(m queue.MailRequested) error {
		if err := sender.Send(ctx, m.To, m.Subject, m.HTML); err != nil {
			metrics.MailDelivered.WithLabelValues("error").Inc()
			log.L().Error("send mail", zap.String("to", m.To), zap.Error(err))
			return err
		}
		metrics.MailDelivered.WithLabelValues("ok").Inc()
		return nil
	}); err != nil {
		log.L().Fatal("consumer stopped", zap.Error(err))
	}
}
