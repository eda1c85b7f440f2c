package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	AMQP       AMQPConfig
	Stripe     StripeConfig
	Queue      QueueConfig
	Lock       LockConfig
	Scheduling SchedulingConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	// asynq keeps its queues in a separate logical database
	QueueDB int `envconfig:"REDIS_QUEUE_DB" default:"1"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL" default:""`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"booking.events"`
}

type StripeConfig struct {
	SecretKey string `envconfig:"STRIPE_SECRET_KEY" default:""`
	Currency  string `envconfig:"STRIPE_CURRENCY" default:"usd"`
}

type QueueConfig struct {
	Concurrency     int           `envconfig:"QUEUE_CONCURRENCY" default:"10"`
	MaxRetry        int           `envconfig:"QUEUE_MAX_RETRY" default:"5"`
	NoShowSweepCron string        `envconfig:"QUEUE_NO_SHOW_SWEEP_CRON" default:"*/5 * * * *"`
	SweepBatchSize  int           `envconfig:"QUEUE_SWEEP_BATCH_SIZE" default:"100"`
	TaskTimeout     time.Duration `envconfig:"QUEUE_TASK_TIMEOUT" default:"30s"`
}

type LockConfig struct {
	// redis or memory; memory only coordinates a single process
	Backend    string        `envconfig:"LOCK_BACKEND" default:"redis"`
	SlotTTL    time.Duration `envconfig:"LOCK_SLOT_TTL" default:"30s"`
	BookingTTL time.Duration `envconfig:"LOCK_BOOKING_TTL" default:"30s"`
	KeyPrefix  string        `envconfig:"LOCK_KEY_PREFIX" default:"carwash:lock:"`
}

type SchedulingConfig struct {
	OperationTimeout      time.Duration `envconfig:"SCHEDULING_OPERATION_TIMEOUT" default:"10s"`
	CacheTTL              time.Duration `envconfig:"SCHEDULING_CACHE_TTL" default:"5m"`
	SearchWindow          time.Duration `envconfig:"SCHEDULING_SEARCH_WINDOW" default:"4h"`
	MaxAlternatives       int           `envconfig:"SCHEDULING_MAX_ALTERNATIVES" default:"5"`
	GracePeriod           time.Duration `envconfig:"SCHEDULING_GRACE_PERIOD" default:"30m"`
	MinRescheduleNotice   time.Duration `envconfig:"SCHEDULING_MIN_RESCHEDULE_NOTICE" default:"2h"`
	OvertimeCentsPerMin   int64         `envconfig:"SCHEDULING_OVERTIME_CENTS_PER_MIN" default:"100"`
	ContentionRetryAfter  time.Duration `envconfig:"SCHEDULING_CONTENTION_RETRY_AFTER" default:"2s"`
	DefaultTimeZone       string        `envconfig:"SCHEDULING_TIMEZONE" default:"UTC"`
	SideEffectLogDisabled bool          `envconfig:"SCHEDULING_SIDE_EFFECT_LOG_DISABLED" default:"false"`
}

type RateLimitConfig struct {
	Enabled bool    `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RPS     float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	Burst   int     `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
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
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Redis: RedisConfig{
			Addr:    "localhost:16379",
			QueueDB: 1,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Lock: LockConfig{
			Backend:    "memory",
			SlotTTL:    30 * time.Second,
			BookingTTL: 30 * time.Second,
			KeyPrefix:  "test:lock:",
		},
		Scheduling: SchedulingConfig{
			OperationTimeout:     5 * time.Second,
			CacheTTL:             time.Minute,
			SearchWindow:         4 * time.Hour,
			MaxAlternatives:      5,
			GracePeriod:          30 * time.Minute,
			MinRescheduleNotice:  2 * time.Hour,
			OvertimeCentsPerMin:  100,
			ContentionRetryAfter: 2 * time.Second,
			DefaultTimeZone:      "UTC",
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
		},
	}
}
