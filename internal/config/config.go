package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig  `envPrefix:"DB_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	JobSearch JobSearchConfig `envPrefix:"JOB_SEARCH_"`
	Auth      AuthConfig      `envPrefix:"AUTH_"`
}

type AppConfig struct {
	AppName          string        `env:"APP_NAME"           envDefault:"job-finder"`
	Environment      string        `env:"APP_ENV"            envDefault:"development"`
	HTTPPort         string        `env:"HTTP_PORT"`
	PlatformPort     string        `env:"PORT"`
	LogLevel         string        `env:"LOG_LEVEL"          envDefault:"info"`
	CORSAllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" envDefault:"*"          envSeparator:","`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"   envDefault:"10s"`
}

type DatabaseConfig struct {
	DBHost     string `env:"HOST,required"`
	DBPort     string `env:"PORT"     envDefault:"5432"`
	DBName     string `env:"NAME,required"`
	DBUser     string `env:"USER,required"`
	DBPassword string `env:"PASSWORD"`
	DBSSLMode  string `env:"SSL_MODE" envDefault:"disable"`

	ConnectTimeout        time.Duration `env:"CONNECT_TIMEOUT"          envDefault:"5s"`
	PoolMaxConns          int32         `env:"POOL_MAX_CONNS"           envDefault:"10"`
	PoolMinConns          int32         `env:"POOL_MIN_CONNS"`
	PoolMaxConnLifetime   time.Duration `env:"POOL_MAX_CONN_LIFETIME"   envDefault:"1h"`
	PoolMaxConnIdleTime   time.Duration `env:"POOL_MAX_CONN_IDLE_TIME"  envDefault:"30m"`
	PoolHealthCheckPeriod time.Duration `env:"POOL_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
}

type RedisConfig struct {
	Host     string        `env:"HOST"     envDefault:"localhost"`
	Port     string        `env:"PORT"     envDefault:"6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB"`
	TTL      time.Duration `env:"TTL"      envDefault:"24h"`
	Disabled bool          `env:"DISABLED"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(r.Host), strings.TrimSpace(r.Port))
}

type JobSearchConfig struct {
	Provider ProviderKind  `env:"PROVIDER"  envDefault:"adzuna"`
	Timeout  time.Duration `env:"TIMEOUT"   envDefault:"10s"`
	PageSize int           `env:"PAGE_SIZE" envDefault:"20"`

	Adzuna   AdzunaConfig   `envPrefix:"ADZUNA_"`
	JobBoard JobBoardConfig `envPrefix:"JOBBOARD_"`
}

type AdzunaConfig struct {
	AppID   string `env:"APP_ID"`
	AppKey  string `env:"APP_KEY"`
	Country string `env:"COUNTRY"  envDefault:"us"`
	BaseURL string `env:"BASE_URL" envDefault:"https://api.adzuna.com"`
}

// JobBoardConfig describes a server-rendered search results page.
// SearchURL carries {profession} and {location} placeholders.
type JobBoardConfig struct {
	SearchURL        string `env:"SEARCH_URL"`
	ItemSelector     string `env:"ITEM_SELECTOR"     envDefault:".job"`
	TitleSelector    string `env:"TITLE_SELECTOR"    envDefault:".job-title"`
	CompanySelector  string `env:"COMPANY_SELECTOR"  envDefault:".job-company"`
	LocationSelector string `env:"LOCATION_SELECTOR" envDefault:".job-location"`
	LinkSelector     string `env:"LINK_SELECTOR"     envDefault:"a"`
	UserAgent        string `env:"USER_AGENT"        envDefault:"JobFinder/1.0"`
}

type AuthConfig struct {
	Mode       AuthMode `env:"MODE"        envDefault:"none"`
	HMACSecret string   `env:"HMAC_SECRET"`
	Issuer     string   `env:"ISSUER"`
	JWKSURL    string   `env:"JWKS_URL"`
	Audience   string   `env:"AUDIENCE"`
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidConfig      = errors.New("invalid configuration")
)

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		if missing := missingKeys(err); len(missing) > 0 {
			return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
		}
		return Config{}, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}

	cfg.Sanitize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Sanitize clamps values that would otherwise hang or overload the process.
func (c *Config) Sanitize() {
	c.App.HTTPPort = strings.TrimSpace(c.App.HTTPPort)
	if c.App.HTTPPort == "" {
		c.App.HTTPPort = strings.TrimSpace(c.App.PlatformPort)
	}
	if c.App.HTTPPort == "" {
		c.App.HTTPPort = "5000"
	}
	if c.App.ShutdownTimeout <= 0 {
		c.App.ShutdownTimeout = 10 * time.Second
	}
	origins := make([]string, 0, len(c.App.CORSAllowOrigins))
	for _, o := range c.App.CORSAllowOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.App.CORSAllowOrigins = origins

	if c.JobSearch.Timeout <= 0 || c.JobSearch.Timeout > time.Minute {
		c.JobSearch.Timeout = 10 * time.Second
	}
	if c.JobSearch.PageSize <= 0 || c.JobSearch.PageSize > 50 {
		c.JobSearch.PageSize = 20
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = 24 * time.Hour
	}
	if c.Database.PoolMaxConns <= 0 {
		c.Database.PoolMaxConns = 10
	}
}

func (c Config) Validate() error {
	var problems []string

	switch c.JobSearch.Provider {
	case ProviderAdzuna:
		if strings.TrimSpace(c.JobSearch.Adzuna.AppID) == "" || strings.TrimSpace(c.JobSearch.Adzuna.AppKey) == "" {
			problems = append(problems, "JOB_SEARCH_ADZUNA_APP_ID and JOB_SEARCH_ADZUNA_APP_KEY are required for the adzuna provider")
		}
	case ProviderJobBoard:
		if strings.TrimSpace(c.JobSearch.JobBoard.SearchURL) == "" {
			problems = append(problems, "JOB_SEARCH_JOBBOARD_SEARCH_URL is required for the jobboard provider")
		}
	}

	switch c.Auth.Mode {
	case AuthModeHMAC:
		if strings.TrimSpace(c.Auth.HMACSecret) == "" {
			problems = append(problems, "AUTH_HMAC_SECRET is required when AUTH_MODE=hmac")
		}
	case AuthModeOIDC:
		if strings.TrimSpace(c.Auth.Issuer) == "" {
			problems = append(problems, "AUTH_ISSUER is required when AUTH_MODE=oidc")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func missingKeys(err error) []string {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return nil
	}

	var out []string
	for _, e := range agg.Errors {
		var notSet env.EnvVarIsNotSetError
		var empty env.EmptyEnvVarError
		switch {
		case errors.As(e, &notSet):
			out = append(out, notSet.Key)
		case errors.As(e, &empty):
			out = append(out, empty.Key)
		}
	}
	return out
}
