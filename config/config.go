package config

import (
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"staysync"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"         default:"3"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME"   default:"2"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"   default:"schema_migrations"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			MaxOpenConns   int              `envconfig:"MAX_OPEN_CONNS"    default:"10"`
			MaxIdleConns   int              `envconfig:"MAX_IDLE_CONNS"    default:"10"`
			ConnMaxLifeMin int              `envconfig:"CONN_MAX_LIFETIME" default:"30"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		Enable        bool     `envconfig:"ENABLE"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"staysync"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Conflicts    string `envconfig:"CONFLICTS"    default:"staysync.sync.conflicts"`
			Bookings     string `envconfig:"BOOKINGS"     default:"staysync.booking.transitions"`
			Housekeeping string `envconfig:"HOUSEKEEPING" default:"staysync.housekeeping.tasks"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Sync struct {
		Workers              int    `envconfig:"WORKERS"                default:"4"`
		QueueSize            int    `envconfig:"QUEUE_SIZE"             default:"256"`
		Schedule             string `envconfig:"SCHEDULE"               default:"@every 15m"`
		FetchTimeoutSeconds  int    `envconfig:"FETCH_TIMEOUT_SECONDS"  default:"15"`
		RetryAttempts        int    `envconfig:"RETRY_ATTEMPTS"         default:"3"`
		RetryBaseSeconds     int    `envconfig:"RETRY_BASE_SECONDS"     default:"2"`
		ListingBudgetSeconds int    `envconfig:"LISTING_BUDGET_SECONDS" default:"90"`
		HorizonDays          int    `envconfig:"HORIZON_DAYS"           default:"540"`
	} `envconfig:"SYNC"`

	Pricing struct {
		StrategyFile        string `envconfig:"STRATEGY_FILE"         default:"pricing/strategies.yaml"`
		OccupancyWindowDays int    `envconfig:"OCCUPANCY_WINDOW_DAYS" default:"14"`
	} `envconfig:"PRICING"`

	Housekeeping struct {
		ShortNoticeHours int `envconfig:"SHORT_NOTICE_HOURS" default:"48"`
		BaseMinutes      int `envconfig:"BASE_MINUTES"       default:"60"`
		BedroomMinutes   int `envconfig:"BEDROOM_MINUTES"    default:"30"`
		BathroomMinutes  int `envconfig:"BATHROOM_MINUTES"   default:"20"`
	} `envconfig:"HOUSEKEEPING"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			Region       string `envconfig:"REGION" default:"auto"`
			AccessKey    string `envconfig:"ACCESS_KEY"`
			SecretKey    string `envconfig:"SECRET_KEY"`
			APIEndpoint  string `envconfig:"API_ENDPOINT"`
			PublicDomain string `envconfig:"PUBLIC_DOMAIN"`
			BucketName   string `envconfig:"BUCKET_NAME"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// PostgresEndpoint is one side of the read/write split. Both sides may point at the same server.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// DSN renders the endpoint as a postgres URL. The prefix is prepended to the database name
// and params are added to the query next to sslmode.
func (e PostgresEndpoint) DSN(prefix string, params url.Values) string {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}

	sslMode := e.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	query.Set("sslmode", sslMode)

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + prefix + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}
