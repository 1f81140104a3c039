package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MQ       MQConfig       `mapstructure:"mq"`
	Store    StoreConfig    `mapstructure:"store"`
	Starknet StarknetConfig `mapstructure:"starknet"`
	Security SecurityConfig `mapstructure:"security"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

// DBConfig is the Postgres audit-log database. Auditing is disabled when
// Host is empty.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MQConfig struct {
	Type    string   `mapstructure:"type"` // "none", "redis" or "kafka"
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "redis"
	// Hex-encoded AES key (16/24/32 bytes). Empty disables state encryption.
	EncryptionKey string `mapstructure:"encryption_key"`
}

type StarknetConfig struct {
	RpcUrl        string `mapstructure:"rpc_url"`
	RelayerUrl    string `mapstructure:"relayer_url"` // hot-wallet signer endpoint
	VaultContract string `mapstructure:"vault_contract"`
	TokenContract string `mapstructure:"token_contract"`
	Decimals      int    `mapstructure:"decimals"`
}

// SecurityConfig carries the spending-limit policy. Amounts are in whole
// tokens; the timeout is in minutes.
type SecurityConfig struct {
	MaxWalletBalance       float64 `mapstructure:"max_wallet_balance"`
	MaxTransactionAmount   float64 `mapstructure:"max_transaction_amount"`
	DailySpendingLimit     float64 `mapstructure:"daily_spending_limit"`
	MaxTransactionsPerHour int     `mapstructure:"max_transactions_per_hour"`
	ConfirmationThreshold  float64 `mapstructure:"confirmation_threshold"`
	SessionTimeoutMinutes  int     `mapstructure:"session_timeout_minutes"`
}

var Global Config

func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "vault_user")
	viper.SetDefault("db.name", "vault_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("mq.type", "none")
	viper.SetDefault("mq.brokers", []string{"localhost:9092"})
	viper.SetDefault("mq.topic", "vault.transactions")

	viper.SetDefault("store.backend", "memory")

	viper.SetDefault("starknet.rpc_url", "https://starknet-sepolia.public.blastapi.io")
	viper.SetDefault("starknet.decimals", 18)

	viper.SetDefault("security.max_wallet_balance", 10)
	viper.SetDefault("security.max_transaction_amount", 2)
	viper.SetDefault("security.daily_spending_limit", 5)
	viper.SetDefault("security.max_transactions_per_hour", 3)
	viper.SetDefault("security.confirmation_threshold", 1)
	viper.SetDefault("security.session_timeout_minutes", 15)
}
