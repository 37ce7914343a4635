package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envListenAddr        = "STARDROP_LISTEN_ADDR"
	envMetricsAddr       = "STARDROP_METRICS_ADDR"
	envLedgerMode        = "STARDROP_LEDGER_MODE"
	envGatewayURL        = "STARDROP_GATEWAY_URL"
	envNetworkPassphrase = "STARDROP_NETWORK_PASSPHRASE"
	envCooldownWindow    = "STARDROP_COOLDOWN_WINDOW"
	envCooldownStatePath = "STARDROP_COOLDOWN_STATE_PATH"
	envIngressRPS        = "STARDROP_INGRESS_RPS"
	envIngressBurst      = "STARDROP_INGRESS_BURST"

	envDistributorSeed     = "STARDROP_DISTRIBUTOR_SEED"
	envDistributorMnemonic = "STARDROP_DISTRIBUTOR_MNEMONIC"
	envStatePassphrase     = "STARDROP_STATE_PASSPHRASE"
)

func applyEnvOverrides(cfg *Config) {
	if v := envString(envListenAddr); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := envString(envMetricsAddr); v != "" {
		cfg.Server.MetricsAddr = v
	}
	if v := envString(envLedgerMode); v != "" {
		cfg.Ledger.Mode = v
	}
	if v := envString(envGatewayURL); v != "" {
		cfg.Ledger.GatewayURL = v
	}
	if v := envString(envNetworkPassphrase); v != "" {
		cfg.Ledger.NetworkPassphrase = v
	}
	if v := envDuration(envCooldownWindow); v > 0 {
		cfg.Cooldown.Window = Duration(v)
	}
	if v := envString(envCooldownStatePath); v != "" {
		cfg.Cooldown.StatePath = v
	}
	if v := envFloat(envIngressRPS); v > 0 {
		cfg.Ingress.RPS = v
	}
	if v := envInt(envIngressBurst); v > 0 {
		cfg.Ingress.Burst = v
	}
}

// DistributorSeed returns the hex signing seed from the environment.
func DistributorSeed() string {
	return envString(envDistributorSeed)
}

// DistributorMnemonic returns the BIP-39 phrase from the environment; used
// when no raw seed is configured.
func DistributorMnemonic() string {
	return envString(envDistributorMnemonic)
}

// StatePassphrase returns the passphrase protecting persisted state.
func StatePassphrase() string {
	return envString(envStatePassphrase)
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string) int {
	raw := envString(key)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}

func envFloat(key string) float64 {
	raw := envString(key)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func envDuration(key string) time.Duration {
	raw := envString(key)
	if raw == "" {
		return 0
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return parsed
}
