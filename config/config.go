package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME"     default:"carrental-backoffice"`
		Timezone string `envconfig:"TIMEZONE"`
		Company  struct {
			Name    string `envconfig:"NAME"    default:"Car Rental Management System"`
			Address string `envconfig:"ADDRESS" default:"123 Rental Street, City, Country"`
			Phone   string `envconfig:"PHONE"   default:"(123) 456-7890"`
			Email   string `envconfig:"EMAIL"   default:"info@carrental.com"`
		} `envconfig:"COMPANY"`
	} `envconfig:"APP"`

	Session struct {
		Redis struct {
			Host     string `envconfig:"HOST" default:"localhost"`
			Port     string `envconfig:"PORT" default:"6379"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"REDIS"`
		TTLMinutes int    `envconfig:"TTL_MINUTES" default:"480"`
		TokenFile  string `envconfig:"TOKEN_FILE"  default:".carrental-session"`
	} `envconfig:"SESSION"`

	JWT struct {
		Secret    string `envconfig:"SECRET"`
		ExpireMin int    `envconfig:"EXPIRE_MIN" default:"480"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Log struct {
		Dir          string `envconfig:"DIR"           default:"logs"`
		FileEnabled  bool   `envconfig:"FILE_ENABLED"`
		RetentionDay int    `envconfig:"RETENTION_DAY" default:"30"`
	} `envconfig:"LOG"`

	Export struct {
		Dir string `envconfig:"DIR" default:"exports"`
	} `envconfig:"EXPORT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `envconfig:"REGION" default:"auto"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

// Init reads .env (when present) and the process environment into the shared Config.
// The configuration is resolved once per process.
func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Debug().Err(loadErr).Msg("no .env file loaded, using process environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			return
		}

		initialized = true
	})

	if err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
