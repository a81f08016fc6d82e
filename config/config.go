package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     int
	Timezone string
	JWT      JWTConfig
	Database DatabaseConfig
	Log      LogConfig
	AWS      AWSConfig
	RabbitMQ RabbitMQConfig
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type DatabaseConfig struct {
	Driver   string // postgres | sqlite
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	Path     string // sqlite file or ":memory:"
	Debug    bool
}

type LogConfig struct {
	Level        string
	Format       string // text | json
	LogstashURL  string
	ElasticURL   string
	ElasticIndex string
}

type AWSConfig struct {
	Region             string
	S3Bucket           string
	S3Region           string
	S3PublicURL        string
	SESEmail           string
	SNSFCMArn          string
	RekognitionEnabled bool
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// bindings maps config keys to the environment variable names the service
// has always used.
var bindings = map[string]string{
	"port":                    "PORT",
	"timezone":                "APP_TIMEZONE",
	"jwt.secret":              "JWT_SECRET",
	"jwt.ttl":                 "JWT_TTL",
	"database.driver":         "DB_DRIVER",
	"database.host":           "DB_HOST",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.port":           "DB_PORT",
	"database.sslmode":        "DB_SSLMODE",
	"database.path":           "DB_PATH",
	"database.debug":          "DB_DEBUG",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
	"log.logstash_url":        "LOGSTASH_URL",
	"log.elastic_url":         "ELASTIC_URL",
	"log.elastic_index":       "ELASTIC_INDEX",
	"aws.region":              "AWS_REGION",
	"aws.s3_bucket":           "S3_BUCKET",
	"aws.s3_region":           "S3_REGION",
	"aws.s3_public_url":       "S3_PUBLIC_URL",
	"aws.ses_email":           "SES_EMAIL",
	"aws.sns_fcm_arn":         "SNS_FCM_ARN",
	"aws.rekognition_enabled": "REKOGNITION_ENABLED",
	"rabbitmq.url":            "RABBITMQ_URL",
	"rabbitmq.exchange":       "RABBITMQ_EXCHANGE",
}

// Load reads .env (if any), then config.yml from the working directory (if
// any), then the environment. Environment wins.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config.yml: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("port", 8080)
	v.SetDefault("timezone", "UTC")
	v.SetDefault("jwt.ttl", "72h")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "macrotrack.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.elastic_index", "macrotrack")
	v.SetDefault("rabbitmq.exchange", "macrotrack.events")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Port:     v.GetInt("port"),
		Timezone: v.GetString("timezone"),
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("database.driver")),
			Host:     v.GetString("database.host"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			Port:     v.GetString("database.port"),
			SSLMode:  v.GetString("database.sslmode"),
			Path:     v.GetString("database.path"),
			Debug:    v.GetBool("database.debug"),
		},
		Log: LogConfig{
			Level:        v.GetString("log.level"),
			Format:       v.GetString("log.format"),
			LogstashURL:  v.GetString("log.logstash_url"),
			ElasticURL:   v.GetString("log.elastic_url"),
			ElasticIndex: v.GetString("log.elastic_index"),
		},
		AWS: AWSConfig{
			Region:             v.GetString("aws.region"),
			S3Bucket:           v.GetString("aws.s3_bucket"),
			S3Region:           v.GetString("aws.s3_region"),
			S3PublicURL:        v.GetString("aws.s3_public_url"),
			SESEmail:           v.GetString("aws.ses_email"),
			SNSFCMArn:          v.GetString("aws.sns_fcm_arn"),
			RekognitionEnabled: v.GetBool("aws.rekognition_enabled"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("rabbitmq.url"),
			Exchange: v.GetString("rabbitmq.exchange"),
		},
	}
	if cfg.AWS.S3Region == "" {
		cfg.AWS.S3Region = cfg.AWS.Region
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET not set")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

// Location is the reference timezone for day boundaries when a request does
// not name one.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AWSEnabled reports whether any AWS-backed feature is configured.
func (c AWSConfig) AWSEnabled() bool {
	return c.Region != "" && (c.S3Bucket != "" || c.SESEmail != "" || c.SNSFCMArn != "" || c.RekognitionEnabled)
}
