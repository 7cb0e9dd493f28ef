package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/zoesbreath/baobab-server/internal/config"
	"github.com/zoesbreath/baobab-server/internal/httpapi"
	"github.com/zoesbreath/baobab-server/internal/log"
	"github.com/zoesbreath/baobab-server/internal/mail"
	"github.com/zoesbreath/baobab-server/internal/metrics"
	"github.com/zoesbreath/baobab-server/internal/oauth"
	"github.com/zoesbreath/baobab-server/internal/queue"
	"github.com/zoesbreath/baobab-server/internal/repo"
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.L().Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.L().Fatal("ensure indexes", zap.Error(err))
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			log.L().Fatal("redis connect", zap.Error(err))
		}
		defer rds.Close()
	}

	var events queue.Publisher = queue.NoopPub{}
	if cfg.RabbitURL != "" {
		pub, err := queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.L().Fatal("rabbit connect", zap.Error(err))
		}
		defer pub.Close()
		events = pub
	}

	// Mail goes through the broker when one is configured, straight over
	// SMTP otherwise, and into the log as a last resort.
	var sender mail.Sender
	switch {
	case cfg.RabbitURL != "":
		sender = mail.NewQueue(events)
	case cfg.SMTPHost != "":
		sender = mail.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPSender)
	default:
		sender = mail.LogSender{}
	}

	var kakao *oauth.KakaoOAuth
	if cfg.KakaoClientID != "" {
		kakao = oauth.NewKakao(cfg.KakaoClientID, cfg.KakaoClientSecret,
			cfg.KakaoRedirectURI, cfg.StateSecret)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.L().Fatal("upload dir", zap.Error(err))
	}

	h := &httpapi.Handler{
		Store:           store,
		Redis:           rds,
		Mail:            sender,
		Events:          events,
		Kakao:           kakao,
		JWTSecret:       cfg.JWTSecret,
		SessionTTL:      time.Duration(cfg.SessionTTLHours) * time.Hour,
		RateLimitPerMin: cfg.RateLimitPerMin,
		PublicBaseURL:   cfg.PublicBaseURL,
		AppSchemeURL:    cfg.AppSchemeURL,
		UploadDir:       cfg.UploadDir,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.NewRouter(h),
	}

	go func() {
		log.L().Info("server up", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.L().Fatal("listen", zap.Error(err))
		}
	}()

	stop, stopCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopCancel()
	<-stop.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.L().Error("shutdown", zap.Error(err))
	}
	log.L().Info("server down")
}
