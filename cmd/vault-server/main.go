package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vault-core/internal/handler"
	"vault-core/internal/security"
	"vault-core/internal/server"
	"vault-core/internal/service"
	"vault-core/internal/service/mq"
	"vault-core/internal/session"
	"vault-core/internal/starknet"
	"vault-core/pkg/config"
	"vault-core/pkg/database"
	"vault-core/pkg/logger"
	"vault-core/pkg/monitor"
	"vault-core/pkg/store"
	"vault-core/pkg/utils/lock"
	"vault-core/pkg/validator"
)

func main() {
	// 1. Foundations
	config.Init()
	cfg := config.Global
	logger.Init(cfg.App.Env)
	defer logger.Sync()
	validator.Init()
	monitor.Init()

	ctx := context.Background()

	// 2. Redis (state store, mq and the sweep lock all ride the same client)
	var redisClient *redis.Client
	needRedis := cfg.Store.Backend == "redis" || cfg.MQ.Type == "redis"
	if needRedis {
		var err error
		redisClient, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect redis", zap.Error(err))
		}
	}

	// 3. Security state store
	st, err := buildStore(cfg.Store, redisClient)
	if err != nil {
		logger.Fatal("Failed to build state store", zap.Error(err))
	}

	engine, err := security.NewEngine(ctx, st, limitsFromConfig(cfg.Security), security.DefaultStateKey, nil)
	if err != nil {
		logger.Fatal("Failed to initialize security engine", zap.Error(err))
	}

	// 4. Chain access
	caller := starknet.NewClient(cfg.Starknet.RpcUrl, cfg.Starknet.RelayerUrl)

	// 5. Event producer
	producer, err := buildProducer(cfg.MQ, redisClient)
	if err != nil {
		logger.Fatal("Failed to build mq producer", zap.Error(err))
	}
	defer producer.Close()

	// 6. Audit log (optional)
	var audit *service.AuditService
	if cfg.DB.Host != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
		db, err := database.ConnectPostgres(dsn)
		if err != nil {
			logger.Fatal("Failed to connect postgres", zap.Error(err))
		}
		audit = service.NewAuditService(db)
		if err := audit.AutoMigrate(); err != nil {
			logger.Fatal("Failed to migrate audit schema", zap.Error(err))
		}
	} else {
		logger.Info("Audit database not configured, auditing disabled")
	}

	// 7. Services
	transfers := service.NewTransferService(engine, caller, producer, audit,
		cfg.Starknet.VaultContract, cfg.Starknet.Decimals, cfg.MQ.Topic)
	balances := service.NewBalanceService(caller,
		cfg.Starknet.VaultContract, cfg.Starknet.TokenContract, cfg.Starknet.Decimals)

	// 8. Inactivity monitor
	var locker lock.DistributedLock
	if redisClient != nil {
		locker = lock.NewRedisLock(redisClient)
	}
	sessionMonitor := session.NewMonitor(engine, locker)
	sessionMonitor.Start()

	// 9. HTTP
	router := server.NewHTTPRouter(
		handler.NewVaultHandler(transfers, balances),
		handler.NewSecurityHandler(engine, transfers),
	)

	app := server.New(server.Config{HttpPort: cfg.App.HttpPort}, router)
	app.OnShutdown(sessionMonitor.Stop)
	app.Run()
}

func buildStore(cfg config.StoreConfig, redisClient *redis.Client) (store.Store, error) {
	var st store.Store
	switch cfg.Backend {
	case "redis":
		st = store.NewRedisStore(redisClient, "vault")
	case "memory", "":
		st = store.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if cfg.EncryptionKey == "" {
		return st, nil
	}
	key, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	return store.NewEncryptedStore(st, key)
}

func buildProducer(cfg config.MQConfig, redisClient *redis.Client) (mq.Producer, error) {
	switch cfg.Type {
	case "kafka":
		return mq.NewKafkaProducer(cfg.Brokers, cfg.Topic), nil
	case "redis":
		return mq.NewRedisProducer(redisClient), nil
	case "none", "":
		return mq.NopProducer{}, nil
	default:
		return nil, fmt.Errorf("unknown mq type %q", cfg.Type)
	}
}

func limitsFromConfig(cfg config.SecurityConfig) security.Limits {
	return security.Limits{
		MaxWalletBalance:       decimal.NewFromFloat(cfg.MaxWalletBalance),
		MaxTransactionAmount:   decimal.NewFromFloat(cfg.MaxTransactionAmount),
		DailySpendingLimit:     decimal.NewFromFloat(cfg.DailySpendingLimit),
		MaxTransactionsPerHour: cfg.MaxTransactionsPerHour,
		ConfirmationThreshold:  decimal.NewFromFloat(cfg.ConfirmationThreshold),
		SessionTimeout:         time.Duration(cfg.SessionTimeoutMinutes) * time.Minute,
	}
}
