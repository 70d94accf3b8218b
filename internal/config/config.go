package config

import (
	"strconv"
	"time"
)

// HTTPConfig is the listen address of the users API.
type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`
}

// WebConfig is the listen address of the web UI. It defaults to a port other
// than the API's so both run side by side.
type WebConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8081"`
}

type PostgresConfig struct {
	// Either DSN directly (e.g. from AWS RDS secret),
	// or components to build it if DSN is empty.
	DSN      string `env:"DSN"`
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"DBNAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// Enabled reports whether enough is configured to reach a database.
// Without it the API falls back to the in-memory repository.
func (c PostgresConfig) Enabled() bool {
	return c.DSN != "" || c.Host != ""
}

func (c PostgresConfig) EffectiveDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "postgres://" + c.User + ":" + c.Password +
		"@" + c.Host + ":" + strconv.Itoa(c.Port) +
		"/" + c.DBName + "?sslmode=" + c.SSLMode
}

type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	// Prepended to every key so the API and the web UI can share one instance.
	KeyPrefix   string        `env:"KEY_PREFIX" envDefault:"usermgmt:"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
}

type KafkaConfig struct {
	Enabled     bool     `env:"ENABLED" envDefault:"false"`
	Brokers     []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	ClientID    string   `env:"CLIENT_ID" envDefault:"usermgmt"`
	GroupID     string   `env:"GROUP_ID" envDefault:"usermgmt-web"`
	TopicPrefix string   `env:"TOPIC_PREFIX"`
}

// UsersAPIConfig points the web client at the users collection resource.
type UsersAPIConfig struct {
	// Collection URL, e.g. "https://api.example.com/users".
	URL     string        `env:"URL" envDefault:"http://localhost:8080/api/v1/users"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type UIConfig struct {
	// SurfaceErrors shows the last remote failure as a banner.
	// Off by default: failures are only logged.
	SurfaceErrors bool          `env:"SURFACE_ERRORS" envDefault:"false"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieName    string        `env:"COOKIE_NAME" envDefault:"usermgmt_session"`
}

// ObservabilityConfig Observability / telemetry configuration
type ObservabilityConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"usermgmt"`
	ServiceEnv  string `env:"SERVICE_ENV" envDefault:"Development"`
	// e.g. "otel-collector:4317"
	OtelEndpoint string `env:"ENDPOINT"`
}

type Config struct {
	// Global environment: Development, Staging, Production...
	Environment string `env:"APP_ENV" envDefault:"Development"`
	// debug, info, warn or error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP          HTTPConfig          `envPrefix:"HTTP_"`
	Web           WebConfig           `envPrefix:"WEB_"`
	Postgres      PostgresConfig      `envPrefix:"PG_"`
	Redis         RedisConfig         `envPrefix:"REDIS_"`
	Kafka         KafkaConfig         `envPrefix:"KAFKA_"`
	UsersAPI      UsersAPIConfig      `envPrefix:"USERS_API_"`
	UI            UIConfig            `envPrefix:"UI_"`
	Observability ObservabilityConfig `envPrefix:"OTEL_"`
}
