package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"marketplace-client/internal/storage"
	"marketplace-client/internal/store"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

const (
	EventsKafka    = "kafka"
	EventsRabbitMQ = "rabbitmq"

	SessionRedis = "redis"
	SessionFile  = "file"
)

// Nested sections carry full variable names so that envconfig never falls
// back to bare names such as USER or HOST.
type PostgresConfig struct {
	Host     string `yaml:"host" envconfig:"DB_HOST"`
	Port     string `yaml:"port" envconfig:"DB_PORT"`
	Name     string `yaml:"name" envconfig:"DB_NAME"`
	User     string `yaml:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
}

// Enabled reports whether a database is configured. The analytics report
// archive is optional.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

func (p PostgresConfig) DSN() string {
	return "host=" + p.Host + " port=" + p.Port + " user=" + p.User +
		" password=" + p.Password + " dbname=" + p.Name + " sslmode=disable"
}

type RedisConfig struct {
	Host    string        `yaml:"host" envconfig:"REDIS_HOST"`
	Port    string        `yaml:"port" envconfig:"REDIS_PORT"`
	MenuTTL time.Duration `yaml:"menu_ttl" envconfig:"REDIS_MENU_TTL"`
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type KafkaConfig struct {
	Broker string `yaml:"broker" envconfig:"KAFKA_BROKER"`
	Topic  string `yaml:"topic" envconfig:"KAFKA_TOPIC"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url" envconfig:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" envconfig:"RABBITMQ_EXCHANGE"`
}

type SessionConfig struct {
	Store string `yaml:"store" envconfig:"SESSION_STORE"`
	File  string `yaml:"file" envconfig:"SESSION_FILE"`
	Key   string `yaml:"key" envconfig:"SESSION_KEY"`
}

type Config struct {
	HTTPAddr       string        `yaml:"http_addr" envconfig:"HTTP_ADDR"`
	BackendURL     string        `yaml:"backend_url" envconfig:"BACKEND_URL"`
	PublicURL      string        `yaml:"public_url" envconfig:"PUBLIC_URL"`
	AllowedOrigins []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	PollInterval   time.Duration `yaml:"poll_interval" envconfig:"POLL_INTERVAL"`
	EventsDriver   string        `yaml:"events_driver" envconfig:"EVENTS_DRIVER"`

	Session  SessionConfig  `yaml:"session" envconfig:"SESSION"`
	Postgres PostgresConfig `yaml:"postgres" envconfig:"DB"`
	Redis    RedisConfig    `yaml:"redis" envconfig:"REDIS"`
	Kafka    KafkaConfig    `yaml:"kafka" envconfig:"KAFKA"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq" envconfig:"RABBITMQ"`
}

func Defaults() Config {
	return Config{
		HTTPAddr:       ":8080",
		BackendURL:     "http://localhost:8081",
		PublicURL:      "http://localhost:3000",
		AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		RequestTimeout: 10 * time.Second,
		PollInterval:   30 * time.Second,
		Session: SessionConfig{
			Store: SessionFile,
			File:  ".marketplace/token",
			Key:   "marketplace:session:token",
		},
		Postgres: PostgresConfig{Port: "5432"},
		Redis:    RedisConfig{Port: "6379", MenuTTL: 5 * time.Minute},
		Kafka:    KafkaConfig{Topic: "marketplace-events"},
		RabbitMQ: RabbitMQConfig{Exchange: "marketplace.events"},
	}
}

// Load starts from Defaults, applies the YAML file at path when path is not
// empty, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return fmt.Errorf("backend url is required")
	}
	switch c.EventsDriver {
	case "", EventsKafka, EventsRabbitMQ:
	default:
		return fmt.Errorf("unknown events driver %q", c.EventsDriver)
	}
	switch c.Session.Store {
	case SessionFile:
	case SessionRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("session store %q needs REDIS_HOST", SessionRedis)
		}
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.EventsDriver == EventsKafka && c.Kafka.Broker == "" {
		return fmt.Errorf("events driver %q needs KAFKA_BROKER", EventsKafka)
	}
	if c.EventsDriver == EventsRabbitMQ && c.RabbitMQ.URL == "" {
		return fmt.Errorf("events driver %q needs RABBITMQ_URL", EventsRabbitMQ)
	}
	return nil
}

func MustInitPostgres(cfg PostgresConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	}
}

// NewEventPublisher builds the publisher selected by EventsDriver. It
// returns a nil publisher when events are disabled. closeFn is never nil.
func NewEventPublisher(cfg Config) (publisher store.EventPublisher, closeFn func() error, err error) {
	switch cfg.EventsDriver {
	case EventsKafka:
		writer := NewKafkaWriter(cfg.Kafka)
		return storage.NewKafkaPublisher(writer), writer.Close, nil
	case EventsRabbitMQ:
		amqpPublisher, err := storage.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		return amqpPublisher, amqpPublisher.Close, nil
	}
	return nil, func() error { return nil }, nil
}
