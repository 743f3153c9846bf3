// Command roundledgerd consumes round events from Kafka and charges round
// fees against the token ledger.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/audithook"
	"github.com/fairwaylabs/roundledger/queue"
	"github.com/fairwaylabs/roundledger/store"
	"github.com/fairwaylabs/roundledger/store/memory"
	"github.com/fairwaylabs/roundledger/store/mongo"
	"github.com/fairwaylabs/roundledger/store/postgres"
	"github.com/fairwaylabs/roundledger/store/sqlite"
)

type config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver     string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI        string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"roundledger"`
	MongoCollection string `env:"MONGO_COLLECTION"`
	PostgresDSN     string `env:"POSTGRES_DSN"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"roundledger.db"`

	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic           string   `env:"KAFKA_TOPIC" envDefault:"round-events"`
	GroupID         string   `env:"KAFKA_GROUP_ID" envDefault:"roundledger"`
	DeadLetterTopic string   `env:"KAFKA_DEAD_LETTER_TOPIC"`
	AuditTopic      string   `env:"KAFKA_AUDIT_TOPIC"`

	BillableEntities []string      `env:"BILLABLE_ENTITIES" envSeparator:","`
	StrictHoleCounts bool          `env:"STRICT_HOLE_COUNTS"`
	MaxAttempts      int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	Backoff          time.Duration `env:"RETRY_BACKOFF" envDefault:"2s"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("roundledgerd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	opts := []roundledger.Option{
		roundledger.WithLogger(logger),
		roundledger.WithBillableEntities(cfg.BillableEntities...),
	}
	if cfg.StrictHoleCounts {
		opts = append(opts, roundledger.WithStrictHoleCounts())
	}

	var auditPub *queue.Publisher
	if cfg.AuditTopic != "" {
		auditPub = queue.NewPublisher(cfg.KafkaBrokers, cfg.AuditTopic)
		defer auditPub.Close()

		recorder := audithook.RecorderFunc(func(ctx context.Context, evt *audithook.AuditEvent) error {
			return auditPub.Publish(ctx, evt.ResourceID, evt)
		})
		opts = append(opts, roundledger.WithHook(audithook.New(recorder, audithook.WithLogger(logger))))
	}

	engine := roundledger.New(st, opts...)
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer func() {
		if err := engine.Stop(); err != nil {
			logger.Error("engine shutdown failed", "error", err)
		}
	}()

	consumer := queue.NewConsumer(queue.Config{
		Brokers:         cfg.KafkaBrokers,
		Topic:           cfg.Topic,
		GroupID:         cfg.GroupID,
		DeadLetterTopic: cfg.DeadLetterTopic,
		MaxAttempts:     cfg.MaxAttempts,
		Backoff:         cfg.Backoff,
	}, engine, queue.WithConsumerLogger(logger))
	defer consumer.Close()

	logger.Info("roundledgerd consuming",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.Topic,
		"group", cfg.GroupID,
		"store", cfg.StoreDriver,
	)

	return consumer.Run(ctx)
}

// openStore builds the configured store driver.
func openStore(ctx context.Context, cfg config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "mongo":
		var opts []mongo.Option
		if cfg.MongoCollection != "" {
			opts = append(opts, mongo.WithCollection(cfg.MongoCollection))
		}
		return mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, opts...)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
		}
		return postgres.Open(cfg.PostgresDSN)
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
