package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Mail          MailConfig
	Hotel         HotelConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRONTDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"FRONTDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FRONTDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRONTDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FRONTDESK_DB_DSN"`
	Driver string `envconfig:"FRONTDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FRONTDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"FRONTDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FRONTDESK_DB_USER"`
	LegacyPassword string `envconfig:"FRONTDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"FRONTDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"FRONTDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRONTDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRONTDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRONTDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRONTDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRONTDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FRONTDESK_REDIS_ADDR"`
	Password     string        `envconfig:"FRONTDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRONTDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRONTDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRONTDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRONTDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRONTDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRONTDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FRONTDESK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FRONTDESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FRONTDESK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FRONTDESK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FRONTDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FRONTDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FRONTDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FRONTDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FRONTDESK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"FRONTDESK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"FRONTDESK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"FRONTDESK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FRONTDESK_AUTO_MIGRATE" default:"false"`
}

// MailConfig selects and configures the outbound mail transport. Provider is
// one of "mailersend", "smtp", or "log"; booking confirmations degrade to the
// log transport when nothing is configured.
type MailConfig struct {
	Provider  string `envconfig:"FRONTDESK_MAIL_PROVIDER" default:"log"`
	FromName  string `envconfig:"FRONTDESK_MAIL_FROM_NAME" default:"Harborview Front Desk"`
	FromEmail string `envconfig:"FRONTDESK_MAIL_FROM_EMAIL"`

	MailerSendAPIKey string `envconfig:"FRONTDESK_MAILERSEND_API_KEY"`

	SMTPHost string `envconfig:"FRONTDESK_SMTP_HOST"`
	SMTPPort int    `envconfig:"FRONTDESK_SMTP_PORT" default:"587"`
	SMTPUser string `envconfig:"FRONTDESK_SMTP_USER"`
	SMTPPass string `envconfig:"FRONTDESK_SMTP_PASS"`
	SMTPTLS  bool   `envconfig:"FRONTDESK_SMTP_TLS" default:"false"`
}

type HotelConfig struct {
	Name             string `envconfig:"FRONTDESK_HOTEL_NAME" default:"Harborview Hotel"`
	SearchResultCap  int    `envconfig:"FRONTDESK_GUEST_SEARCH_CAP" default:"25"`
	ActivityWindowHr int    `envconfig:"FRONTDESK_ACTIVITY_WINDOW_HOURS" default:"6"`
	ActivityFeedCap  int    `envconfig:"FRONTDESK_ACTIVITY_FEED_CAP" default:"6"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
