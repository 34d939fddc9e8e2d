package config

import (
	"strings"
	"time"

	"surveyor/model/model"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DEVELOPMENT = "development"

// Configuration holds values consumed from the environment. A missing
// DATABASE_URL is a fatal configuration error surfaced before the
// process starts serving traffic; there is no fallback store.
type Configuration struct {
	Env          string   `envconfig:"ENV" default:"development"`
	Port         int      `envconfig:"PORT" default:"8080"`
	AppName      string   `envconfig:"APP_NAME" default:"Student Satisfaction Survey"`
	DatabaseURL  string   `envconfig:"DATABASE_URL" required:"true"`
	Debug        bool     `envconfig:"DEBUG" default:"false"`
	AllowedHosts []string `envconfig:"ALLOWED_HOSTS"`
	CORSOrigins  []string `envconfig:"CORS_ORIGINS"`
}

func (c *Configuration) IsDevelopment() bool {
	return c.Env == DEVELOPMENT
}

// LoadFromEnv decodes the configuration from environment variables.
func LoadFromEnv() (*Configuration, error) {
	var cfg Configuration
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration from environment")
	}
	return &cfg, nil
}

// InitLogging configures logrus for the environment.
func InitLogging(cfg *Configuration) {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if cfg.IsDevelopment() || cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
}

const (
	legacyURLScheme    = "postgresql://"
	canonicalURLScheme = "postgres://"
)

// NormalizeDatabaseURL rewrites the legacy postgresql:// scheme prefix
// to the canonical postgres:// form expected by the driver and verifies
// the canonical marker is present. Malformed values fail here, at
// process start, not at first query.
func NormalizeDatabaseURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("database url is empty")
	}

	if strings.HasPrefix(raw, legacyURLScheme) {
		raw = canonicalURLScheme + strings.TrimPrefix(raw, legacyURLScheme)
	}

	if !strings.Contains(raw, canonicalURLScheme) {
		return "", errors.Errorf("database url must use the %s scheme", canonicalURLScheme)
	}
	return raw, nil
}

// Pool bounds: 10 steady-state connections with an overflow allowance
// of 20 for bursts. Connections are recycled after 5 minutes to avoid
// stale server side state.
const (
	poolMaxIdleConns    = 10
	poolMaxOpenConns    = 30
	poolConnMaxLifetime = 5 * time.Minute
)

// Services bundles the process wide connections. Constructed once at
// startup, passed explicitly to request handlers, torn down with Close.
type Services struct {
	Db *gorm.DB
}

// InitServices opens the pooled database connection, verifies it and
// prepares the survey_responses table. Any error here means the
// process must not start serving traffic.
func InitServices(cfg *Configuration) (*Services, error) {
	databaseURL, err := NormalizeDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	// Connection Pooling and Logging.
	db.DB().SetMaxIdleConns(poolMaxIdleConns)
	db.DB().SetMaxOpenConns(poolMaxOpenConns)
	db.DB().SetConnMaxLifetime(poolConnMaxLifetime)
	db.LogMode(cfg.Debug)

	if err := db.DB().Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database ping failed")
	}

	if err := db.AutoMigrate(&model.SurveyResponse{}).Error; err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate survey_responses table")
	}

	log.Info("Db Service initialized")
	return &Services{Db: db}, nil
}

// Close releases the database pool.
func (s *Services) Close() {
	if s.Db != nil {
		if err := s.Db.Close(); err != nil {
			log.WithError(err).Error("Failed to close database connection.")
		}
	}
}
