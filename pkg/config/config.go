package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/client"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/logger"
)

var (
	mongoURIPattern  = regexp.MustCompile(`^mongodb(\+srv)?://`)
	mongoCredentials = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultSeatPrice float64

	KafkaEnabled        bool
	KafkaBusEventsTopic string
	KafkaBusEventsDLQ   string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the service configuration from the environment. Setting
// KAFKA_BROKERS is what turns event publishing on; without it the service
// runs standalone.
func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          envString(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: envString(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  envDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: envString(EnvPort, DefaultPort),

		RateLimitRequests: envInt(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   envDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: envDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: envDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: envInt(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     envDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    envDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     envDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: envDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultSeatPrice: envFloat(EnvDefaultSeatPrice, DefaultDefaultSeatPrice),

		KafkaEnabled:        envString(EnvKafkaBrokers, "") != "",
		KafkaBusEventsTopic: envString(EnvKafkaBusEventsTopic, DefaultKafkaBusEventsTopic),
		KafkaBusEventsDLQ:   envString(EnvKafkaBusEventsDLQ, ""),

		Log: logger.New(logger.Config{
			Level:     envString(EnvLogLevel, DefaultLogLevel),
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

// Validate reports every problem at once rather than stopping at the first.
func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		problems = append(problems, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !mongoURIPattern.MatchString(cfg.MongoURI) {
		problems = append(problems, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		problems = append(problems, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		problems = append(problems, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.DefaultSeatPrice <= 0 {
		problems = append(problems, fmt.Sprintf("DefaultSeatPrice must be positive, got: %f", cfg.DefaultSeatPrice))
	}

	if cfg.KafkaEnabled && cfg.KafkaBusEventsTopic == "" {
		problems = append(problems, "KafkaBusEventsTopic cannot be empty when Kafka is enabled")
	}

	if len(problems) == 0 {
		return nil
	}

	msg := "Configuration validation failed:\n"
	for i, p := range problems {
		msg += fmt.Sprintf("  %d. %s\n", i+1, p)
	}
	return fmt.Errorf("%s", msg)
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_seat_price", cfg.DefaultSeatPrice,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_bus_events_topic", cfg.KafkaBusEventsTopic,
		"kafka_bus_events_dlq", cfg.KafkaBusEventsDLQ,
	)
}

// redactMongoURI masks inline credentials so the URI is loggable.
func redactMongoURI(uri string) string {
	return mongoCredentials.ReplaceAllString(uri, "${1}***:***@")
}

// NormalizePaginationLimit clamps limit to [0, MaxPaginationLimit]; zero
// means unbounded.
func NormalizePaginationLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	return min(limit, MaxPaginationLimit)
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
