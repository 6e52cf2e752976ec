package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/securebank/backoffice/pkg/logger"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds every env-derived setting of the back-office. Only this
// struct may be used to read configuration, no direct os.Getenv access
// elsewhere.
type Config struct {
	AppEnv              string `env:"APP_ENV" default:"dev"`
	AppName             string `env:"APP_NAME" default:"backoffice"`
	AppDebug            bool   `env:"APP_DEBUG" default:"1"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI"`

	HttpListenAddr         string `env:"HTTP_LISTEN_ADDR" default:":8080"`
	HttpServerReadTimeout  int    `env:"HTTP_SERVER_READ_TIMEOUT"`
	HttpServerWriteTimeout int    `env:"HTTP_SERVER_WRITE_TIMEOUT"`

	RedisAddr               string `env:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	PromNamespace string `env:"PROM_NAMESPACE" default:"securebank"`

	SessionTTL     time.Duration `env:"SESSION_TTL" default:"8h"`
	LoginDelay     time.Duration `env:"LOGIN_DELAY" default:"1s"`
	IdentityURL    string        `env:"IDENTITY_URL"`
	SeedDemoData   bool          `env:"SEED_DEMO_DATA" default:"1"`
	AuditStream    string        `env:"AUDIT_STREAM" default:"backoffice:activities"`
	AuditMaxLen    int64         `env:"AUDIT_MAX_LEN" default:"10000"`
	NotifyWorkers  int           `env:"NOTIFY_WORKERS" default:"2"`
	NotifyBufferSz int           `env:"NOTIFY_BUFFER_SIZE" default:"256"`

	LogLevel []string `env:"LOG_LEVEL"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration file "+path)
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
