package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ModeGateway = "gateway"
	ModeMock    = "mock"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Ledger       LedgerConfig       `yaml:"ledger"`
	Distribution DistributionConfig `yaml:"distribution"`
	Cooldown     CooldownConfig     `yaml:"cooldown"`
	Ingress      IngressConfig      `yaml:"ingress"`
}

type ServerConfig struct {
	ListenAddr  string `yaml:"listenAddr"`
	MetricsAddr string `yaml:"metricsAddr"`
}

type LedgerConfig struct {
	// Mode selects the gateway adapter or the in-memory mock ledger.
	Mode              string   `yaml:"mode"`
	GatewayURL        string   `yaml:"gatewayUrl"`
	NetworkPassphrase string   `yaml:"networkPassphrase"`
	RequestTimeout    Duration `yaml:"requestTimeout"`
}

type DistributionConfig struct {
	// PrimaryAmount, when set, grants that much of the native asset ahead
	// of the configured catalog.
	PrimaryAmount string       `yaml:"primaryAmount"`
	Assets        []AssetEntry `yaml:"assets"`
}

type AssetEntry struct {
	Code   string `yaml:"code"`
	Issuer string `yaml:"issuer"`
	Amount string `yaml:"amount"`
}

type CooldownConfig struct {
	Window Duration `yaml:"window"`
	// StatePath enables encrypted persistence of cooldown state; it needs
	// the passphrase from the environment to take effect.
	StatePath string `yaml:"statePath"`
}

type IngressConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "127.0.0.1:8790",
			MetricsAddr: "",
		},
		Ledger: LedgerConfig{
			Mode:              ModeGateway,
			NetworkPassphrase: "stardrop public network",
			RequestTimeout:    Duration(30 * time.Second),
		},
		Cooldown: CooldownConfig{
			Window: Duration(60 * time.Second),
		},
		Ingress: IngressConfig{
			RPS:   0.5,
			Burst: 3,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file when
// present, then environment overrides. Secrets never live in the file; see
// the env.go accessors.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Mode {
	case ModeGateway:
		if c.Ledger.GatewayURL == "" {
			return fmt.Errorf("ledger.gatewayUrl is required in %s mode", ModeGateway)
		}
	case ModeMock:
	default:
		return fmt.Errorf("ledger.mode must be %q or %q, have %q", ModeGateway, ModeMock, c.Ledger.Mode)
	}
	if c.Ledger.NetworkPassphrase == "" {
		return fmt.Errorf("ledger.networkPassphrase must not be empty")
	}
	if c.Cooldown.Window <= 0 {
		return fmt.Errorf("cooldown.window must be positive")
	}
	return nil
}
