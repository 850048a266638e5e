package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/quantex-lab/relayer/config"
	"github.com/quantex-lab/relayer/internal/entity"
	"github.com/quantex-lab/relayer/internal/repository"
	"github.com/quantex-lab/relayer/pkg/kafka"
	"github.com/quantex-lab/relayer/pkg/logger"
	"github.com/quantex-lab/relayer/pkg/pubsub"
	"github.com/quantex-lab/relayer/pkg/xcontext"
	"github.com/quantex-lab/relayer/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	txRepo repository.TransactionRepository

	redisClient xredis.Client
	publisher   pubsub.Publisher
}

func (s *srv) loadConfig() {
	chainCfg, err := config.LoadChainConfigs(getEnv("CHAIN_CONFIG", "chain.toml"))
	if err != nil {
		log.Fatalf("Cannot load chain config: %v", err)
	}

	cfg := config.Configs{
		Env: getEnv("ENV", "dev"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "relayer"),
			Password: getEnv("MYSQL_PASSWORD", "relayer"),
			Database: getEnv("MYSQL_DATABASE", "relayer"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr:  getEnv("KAFKA_ADDR", "localhost:9092"),
			Topic: getEnv("KAFKA_TELEMETRY_TOPIC", "relayer-telemetry"),
		},
		Telegram: config.TelegramConfigs{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			AlertChatID: getEnv("TELEGRAM_ALERT_CHAT_ID", ""),
		},
		Chain: chainCfg,
		Relayer: config.RelayerConfigs{
			PrivateKey:           getEnv("RELAYER_PRIVATE_KEY", ""),
			MinBalance:           getEnv("RELAYER_MIN_BALANCE", "0"),
			SubmitTimeout:        getDuration("RELAYER_SUBMIT_TIMEOUT", 30*time.Second),
			NonceStaleThreshold:  getDuration("RELAYER_NONCE_STALE_THRESHOLD", 5*time.Minute),
			ReceiptPollFrequency: getDuration("RELAYER_RECEIPT_POLL_FREQUENCY", 5*time.Second),
			AutoApproveCeiling:   getEnv("RELAYER_AUTO_APPROVE_CEILING", ""),
		},
		RPCSrv: config.ServerConfigs{
			Host: getEnv("RPC_HOST", "0.0.0.0"),
			Port: getEnv("RPC_PORT", "8545"),
		},
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "dev" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := xcontext.DB(s.ctx).AutoMigrate(&entity.Transaction{}); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	var err error
	s.publisher, err = kafka.NewPublisher("relayer", []string{xcontext.Configs(s.ctx).Kafka.Addr})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.txRepo = repository.NewTransactionRepository()
}

func getEnv(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}

	return fallback
}

func getDuration(name string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", name, err)
	}

	return d
}
