package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	State         StateConfig
	SMTP          SMTPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HABI_APP_ENV" required:"true"`
	Port         string `envconfig:"HABI_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"HABI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HABI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"HABI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HABI_REDIS_ADDR"`
	Password     string        `envconfig:"HABI_REDIS_PASSWORD"`
	DB           int           `envconfig:"HABI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HABI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HABI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HABI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HABI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HABI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HABI_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HABI_JWT_ISSUER" default:"habi-backend"`
	ExpirationMinutes int    `envconfig:"HABI_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"HABI_SESSION_TTL_MINUTES" default:"720"`
}

// SessionTTL returns the server-side session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	MinLength        int `envconfig:"HABI_PASSWORD_MIN_LENGTH" default:"6"`
	ArgonMemoryKB    int `envconfig:"HABI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HABI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HABI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HABI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HABI_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"HABI_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"HABI_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"HABI_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"HABI_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"HABI_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"HABI_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type StateConfig struct {
	SaveDir   string `envconfig:"HABI_STATE_SAVE_DIR" default:"save_files"`
	ConfigDir string `envconfig:"HABI_STATE_CONFIG_DIR" default:"config"`
}

type SMTPConfig struct {
	Host      string        `envconfig:"HABI_SMTP_HOST" default:"smtp.gmail.com"`
	Port      int           `envconfig:"HABI_SMTP_PORT" default:"465"`
	Username  string        `envconfig:"HABI_SMTP_USERNAME"`
	Password  string        `envconfig:"HABI_SMTP_PASSWORD"`
	Recipient string        `envconfig:"HABI_SMTP_RECIPIENT"`
	Timeout   time.Duration `envconfig:"HABI_SMTP_TIMEOUT" default:"15s"`
	MockMode  bool          `envconfig:"HABI_SMTP_MOCK_MODE" default:"false"`
}

// FeedbackRecipient defaults to the sending account, mirroring the
// self-addressed feedback inbox the storefront started with.
func (s SMTPConfig) FeedbackRecipient() string {
	if s.Recipient != "" {
		return s.Recipient
	}
	return s.Username
}
