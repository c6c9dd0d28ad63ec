// Package config loads the deployment settings of the adventurer client from
// environment variables. Required values are checked once at startup so that
// a misconfigured client fails before any screen is shown.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

// Networks lists the accepted values of IOTA_NETWORK.
var Networks = []string{"mainnet", "testnet", "devnet", "localnet"}

var (
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrRemoteNetwork rejects the public networks. Their nodes only accept
	// BCS transaction data; transactions here are cramberry encoded.
	ErrRemoteNetwork = errors.New("network not supported, use localnet")
)

// Contract identifies the deployed game package and its shared objects.
type Contract struct {
	PackageID      string `env:"IOTA_PACKAGE_ID,required,notEmpty"`
	GameBankID     string `env:"IOTA_GAME_BANK_ID,required,notEmpty"`
	RandomObjectID string `env:"IOTA_RANDOM_OBJECT_ID" envDefault:"0x8"`
}

// Config is the full client configuration.
type Config struct {
	Contract Contract

	Network string `env:"IOTA_NETWORK" envDefault:"localnet"`
	// RPCURL is the JSON-RPC endpoint of a localnet node. When empty the
	// client looks for a local node and otherwise runs its own chain.
	RPCURL string `env:"IOTA_RPC_URL"`
	// CAFile is an extra PEM certificate to trust, such as the one written by
	// a TLS localnet node.
	CAFile string `env:"IOTA_RPC_CA_FILE"`

	KeyFile       string        `env:"ADVENTURER_KEY_FILE" envDefault:".adventurer.key"`
	SlowThreshold time.Duration `env:"ADVENTURER_SLOW_THRESHOLD" envDefault:"5s"`
	MaxLogs       int           `env:"ADVENTURER_MAX_LOGS" envDefault:"10"`
	BankFallback  bool          `env:"ADVENTURER_BANK_FALLBACK" envDefault:"true"`
	AnimationStep time.Duration `env:"ADVENTURER_ANIMATION_STEP" envDefault:"600ms"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.finish()
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.finish()
}

func (c Config) finish() (Config, error) {
	if !slices.Contains(Networks, c.Network) {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, c.Network)
	}
	if c.Network != "localnet" {
		return Config{}, fmt.Errorf("%w: %q", ErrRemoteNetwork, c.Network)
	}
	if c.MaxLogs <= 0 {
		return Config{}, fmt.Errorf("ADVENTURER_MAX_LOGS must be positive, got %d", c.MaxLogs)
	}
	return c, nil
}

// InProcess reports whether the client should run its own local chain.
func (c Config) InProcess() bool {
	return c.Network == "localnet" && c.RPCURL == ""
}

// ExplorerTxURL links a transaction digest to the public explorer. Networks
// without one, such as localnet, yield "".
func (c Config) ExplorerTxURL(digest string) string {
	if c.Network == "localnet" {
		return ""
	}
	return fmt.Sprintf("https://iotascan.com/%s/tx/%s", c.Network, digest)
}

// Validate checks that every shared object reference is present.
func (c Contract) Validate() error {
	var errs []error
	if c.PackageID == "" {
		errs = append(errs, errors.New("missing package id"))
	}
	if c.GameBankID == "" {
		errs = append(errs, errors.New("missing game bank id"))
	}
	if c.RandomObjectID == "" {
		errs = append(errs, errors.New("missing random object id"))
	}
	return errors.Join(errs...)
}
