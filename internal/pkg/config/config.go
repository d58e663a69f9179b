package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Store       StoreConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Fulfillment FulfillmentConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"order_fulfillment"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Taipei"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Taipei"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"28800"` // 8*60*60
	// empty disables the rotating file sink
	File           string `envconfig:"LOG_FILE" default:""`
	FileMaxSizeMB  int    `envconfig:"LOG_FILE_MAX_SIZE_MB" default:"50"`
	FileMaxBackups int    `envconfig:"LOG_FILE_MAX_BACKUPS" default:"3"`
	FileMaxAgeDays int    `envconfig:"LOG_FILE_MAX_AGE_DAYS" default:"7"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"

	TransportInProcess = "inprocess"
	TransportKafka     = "kafka"
)

type StoreConfig struct {
	Backend     string `envconfig:"STORE_BACKEND" default:"memory"`
	CartBackend string `envconfig:"CART_BACKEND" default:"memory"`
	LockBackend string `envconfig:"LOCK_BACKEND" default:"memory"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	LockTTL  time.Duration `envconfig:"REDIS_LOCK_TTL" default:"10s"`
	CartTTL  time.Duration `envconfig:"REDIS_CART_TTL" default:"168h"`
}

type KafkaConfig struct {
	Transport string   `envconfig:"NOTIFY_TRANSPORT" default:"inprocess"`
	Brokers   []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic     string   `envconfig:"KAFKA_TOPIC" default:"order-notifications"`
	GroupID   string   `envconfig:"KAFKA_GROUP_ID" default:"order-service"`
}

type FulfillmentConfig struct {
	OrderPaymentTimeout time.Duration `envconfig:"ORDER_PAYMENT_TIMEOUT" default:"30m"`
	PaymentTimeout      time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"30m"`
	// 0 disables the built-in sweep scheduler
	SweepInterval   time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	DefaultCurrency string        `envconfig:"DEFAULT_CURRENCY" default:"TWD"`
	// simulated round trip of the mock payment gateway and logistics provider
	GatewayLatency   time.Duration `envconfig:"GATEWAY_LATENCY" default:"100ms"`
	LogisticsLatency time.Duration `envconfig:"LOGISTICS_LATENCY" default:"50ms"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Store.CartBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unsupported CART_BACKEND %q", c.Store.CartBackend)
	}
	switch c.Store.LockBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unsupported LOCK_BACKEND %q", c.Store.LockBackend)
	}
	switch c.Kafka.Transport {
	case TransportInProcess, TransportKafka:
	default:
		return fmt.Errorf("unsupported NOTIFY_TRANSPORT %q", c.Kafka.Transport)
	}
	if c.Fulfillment.OrderPaymentTimeout <= 0 || c.Fulfillment.PaymentTimeout <= 0 {
		return fmt.Errorf("payment timeouts must be positive")
	}
	return nil
}

// UsesRedis reports whether any component needs a Redis client.
func (c Config) UsesRedis() bool {
	return c.Store.CartBackend == BackendRedis || c.Store.LockBackend == BackendRedis
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Taipei",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Taipei",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 28800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Store: StoreConfig{
			Backend:     BackendMemory,
			CartBackend: BackendMemory,
			LockBackend: BackendMemory,
		},
		Kafka: KafkaConfig{
			Transport: TransportInProcess,
			Topic:     "order-notifications",
			GroupID:   "order-service-test",
		},
		Fulfillment: FulfillmentConfig{
			OrderPaymentTimeout: 30 * time.Minute,
			PaymentTimeout:      30 * time.Minute,
			SweepInterval:       0,
			DefaultCurrency:     "TWD",
		},
	}
}
