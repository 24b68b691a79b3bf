package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Cache Cache

	Admin Admin `validate:"required"`

	Contact Contact
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Kafka struct {
	GroupID          string   `validate:"required"`
	Brokers          []string `validate:"required,min=1,dive,hostname_port"`
	SubmissionsTopic string   `validate:"required"`
	EventsTopic      string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`

	ConnectAttempts int `validate:"gte=1"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Admin struct {
	Username string `validate:"required"`
	// Пароль задается либо открытым текстом, либо bcrypt-хэшем
	Password     string `validate:"required_without=PasswordHash"`
	PasswordHash string `validate:"omitempty,startswith=$2"`

	JWTSecret  string        `validate:"required,min=16"`
	SessionTTL time.Duration `validate:"gt=0"`

	RevokedCapacity int `validate:"gte=1"`
}

type Contact struct {
	Phone   string `validate:"omitempty,e164"`
	Message string
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID:          env("KAFKA_GROUP_ID", "publika-insight"),
			SubmissionsTopic: env("KAFKA_SUBMISSIONS_TOPIC", "order-submissions"),
			EventsTopic:      env("KAFKA_EVENTS_TOPIC", "order-events"),
			Brokers:          strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "orders"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),

			ConnectAttempts: envInt("POSTGRES_CONNECT_ATTEMPTS", 5),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},

		Admin: Admin{
			Username:     env("ADMIN_USERNAME", "owner123"),
			Password:     env("ADMIN_PASSWORD", "owner1234"),
			PasswordHash: env("ADMIN_PASSWORD_HASH", ""),

			JWTSecret:  env("ADMIN_JWT_SECRET", ""),
			SessionTTL: envDuration("ADMIN_SESSION_TTL", 12*time.Hour),

			RevokedCapacity: envInt("ADMIN_REVOKED_CAPACITY", 1000),
		},

		Contact: Contact{
			Phone:   env("CONTACT_PHONE", "+6283823956834"),
			Message: env("CONTACT_MESSAGE", "Halo Publik Insight!"),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
