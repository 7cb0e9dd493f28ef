package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full environment surface of both binaries. Optional
// integrations (Redis, RabbitMQ, SMTP, Kakao OAuth) are detected by their
// fields being non-empty; the server degrades to local fallbacks otherwise.
type Config struct {
	Port  string `env:"APP_PORT" envDefault:"8080"`
	Debug bool   `env:"DEBUG" envDefault:"false"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"baobab"`

	JWTSecret       string `env:"JWT_SECRET" envDefault:"default_secret_key"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	RedisAddr       string `env:"REDIS_ADDR"`
	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MIN" envDefault:"5"`

	RabbitURL      string `env:"RABBIT_URL"`
	RabbitExchange string `env:"RABBIT_EXCHANGE" envDefault:"baobab.events"`
	MailQueue      string `env:"RABBIT_MAIL_QUEUE" envDefault:"mailq"`
	MailBindKey    string `env:"RABBIT_MAIL_KEY" envDefault:"mail.requested"`
	MailWorkers    int    `env:"MAIL_WORKERS" envDefault:"4"`
	MailPrefetch   int    `env:"MAIL_PREFETCH" envDefault:"50"`

	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`
	SMTPSender string `env:"SMTP_SENDER" envDefault:"admin@zoesbreath.com"`

	KakaoClientID     string `env:"KAKAO_CLIENT_ID"`
	KakaoClientSecret string `env:"KAKAO_CLIENT_SECRET"`
	KakaoRedirectURI  string `env:"KAKAO_REDIRECT_URI"`
	StateSecret       string `env:"STATE_SECRET" envDefault:"default_state_key"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	AppSchemeURL  string `env:"APP_SCHEME_URL" envDefault:"zoebreath://"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}
