package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string

	Database DatabaseConfigs
	Redis    RedisConfigs
	Kafka    KafkaConfigs
	Telegram TelegramConfigs
	Chain    ChainConfigs
	Relayer  RelayerConfigs
	RPCSrv   ServerConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr  string
	Topic string
}

type TelegramConfigs struct {
	BotToken    string
	AlertChatID string
}

type ChainConfigs struct {
	Chain   string   `toml:"chain"`
	ChainID int64    `toml:"chain_id"`
	Rpcs    []string `toml:"rpcs"`

	// For gas calculation.
	UseEip1559 bool `toml:"use_eip_1559"`

	RefreshConnectionFrequency time.Duration `toml:"refresh_connection_frequency"`
}

// RelayerConfigs controls the single-account transaction queue.
type RelayerConfigs struct {
	// PrivateKey is the hex-encoded signing key of the relayer account.
	PrivateKey string

	// MinBalance is the balance floor in wei. Submission is refused when the
	// account drops below it.
	MinBalance string

	// SubmitTimeout bounds the wait for the network to accept a transaction
	// into its pending pool. The receipt wait is unbounded.
	SubmitTimeout time.Duration

	// NonceStaleThreshold is how long after the last successful submission
	// the local nonce is still trusted without asking the network again.
	NonceStaleThreshold time.Duration

	// ReceiptPollFrequency is how often the receipt waiter asks the network
	// for a transaction receipt.
	ReceiptPollFrequency time.Duration

	// AutoApproveCeiling is the max value in wei the auto gate approves
	// without an operator decision. Empty means approve everything.
	AutoApproveCeiling string
}

// LoadChainConfigs reads the per-chain TOML file.
func LoadChainConfigs(path string) (ChainConfigs, error) {
	var cfg ChainConfigs
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return ChainConfigs{}, err
	}

	return cfg, nil
}
