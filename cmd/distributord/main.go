package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stardrop/go-backend/internal/asset"
	"stardrop/go-backend/internal/config"
	"stardrop/go-backend/internal/distributor"
	"stardrop/go-backend/internal/ledger"
	"stardrop/go-backend/internal/platform/ratelimiter"
	"stardrop/go-backend/internal/platform/secretlog"
	"stardrop/go-backend/internal/service"
	"stardrop/go-backend/internal/wallet"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "Path to config.yaml (optional)")
	listenAddr := flag.String("listen", "", "Ingress listen address override")
	flag.Parse()
	if *showVersion {
		fmt.Printf("distributord version=%s commit=%s build_date=%s\n", version, commit, buildDate)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("distributord failed to load config: %v", err)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}

	keys, err := loadDistributorKeys()
	if err != nil {
		log.Fatalf("distributord failed to load signing key: %v", err)
	}
	scrubber := secretlog.NewScrubber(keys.SecretString())
	logger := slog.New(secretlog.WrapHandler(slog.NewTextHandler(os.Stderr, nil), scrubber))

	catalog, primaryAmount, err := buildCatalog(cfg.Distribution)
	if err != nil {
		log.Fatalf("distributord failed to load asset catalog: %v", err)
	}

	client, err := buildClient(cfg, keys, catalog)
	if err != nil {
		log.Fatalf("distributord failed to build ledger client: %v", err)
	}

	var store distributor.CooldownStore
	if cfg.Cooldown.StatePath != "" {
		if pass := config.StatePassphrase(); pass != "" {
			fileStore, err := distributor.NewFileCooldownStore(cfg.Cooldown.StatePath, pass)
			if err != nil {
				log.Fatalf("distributord failed to open cooldown store: %v", err)
			}
			store = fileStore
		} else {
			logger.Warn("cooldown state path configured without a passphrase, running in-memory only")
		}
	}
	guard, err := distributor.NewCooldownGuard(cfg.Cooldown.Window.Std(), store)
	if err != nil {
		log.Fatalf("distributord failed to restore cooldown state: %v", err)
	}

	submitter := distributor.NewSubmitter(client, keys, cfg.Ledger.NetworkPassphrase, scrubber, logger)
	orchestrator := distributor.NewOrchestrator(submitter, guard, logger)

	svc, err := service.New(service.Options{
		Logger:          logger,
		Catalog:         catalog,
		PrimaryAmount:   primaryAmount,
		Client:          client,
		Orchestrator:    orchestrator,
		Limiter:         ratelimiter.New(cfg.Ingress.RPS, cfg.Ingress.Burst, 10*time.Minute),
		DistributorAddr: keys.Address(),
	})
	if err != nil {
		log.Fatalf("distributord failed to initialize: %v", err)
	}

	logger.Info("running preflight", "distributor", keys.Address(), "mode", cfg.Ledger.Mode)
	if err := svc.Start(ctx); err != nil {
		log.Fatalf("distributord refused to start: %v", err)
	}

	if cfg.Server.MetricsAddr != "" {
		go func() {
			logger.Info("metrics listening", "addr", cfg.Server.MetricsAddr)
			if err := http.ListenAndServe(cfg.Server.MetricsAddr, promhttp.Handler()); err != nil {
				logger.Error("metrics listener failed", "error", err)
			}
		}()
	}

	server := &http.Server{Addr: cfg.Server.ListenAddr, Handler: svc.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("distributord serving", "addr", cfg.Server.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("distributord failed: %v", err)
	}
	logger.Info("distributord stopped")
}

func loadDistributorKeys() (*wallet.KeyPair, error) {
	if seed := config.DistributorSeed(); seed != "" {
		return wallet.FromSeedHex(seed)
	}
	if mnemonic := config.DistributorMnemonic(); mnemonic != "" {
		return wallet.FromMnemonic(mnemonic, "")
	}
	return nil, errors.New("set STARDROP_DISTRIBUTOR_SEED or STARDROP_DISTRIBUTOR_MNEMONIC")
}

func buildCatalog(dist config.DistributionConfig) (asset.Catalog, string, error) {
	specs := make([]asset.Spec, 0, len(dist.Assets))
	for _, entry := range dist.Assets {
		specs = append(specs, asset.Spec{Code: entry.Code, Issuer: entry.Issuer, Amount: entry.Amount})
	}
	if len(specs) == 0 {
		if dist.PrimaryAmount == "" {
			return nil, "", errors.New("nothing to distribute: configure distribution.assets or distribution.primaryAmount")
		}
		catalog, err := asset.NewStaticCatalog([]asset.Spec{{Code: asset.NativeCode, Amount: dist.PrimaryAmount}})
		return catalog, "", err
	}
	catalog, err := asset.NewStaticCatalog(specs)
	return catalog, dist.PrimaryAmount, err
}

func buildClient(cfg config.Config, keys *wallet.KeyPair, catalog asset.Catalog) (ledger.Client, error) {
	switch cfg.Ledger.Mode {
	case config.ModeMock:
		mock := ledger.NewMockClient()
		balances := make([]ledger.Balance, 0, len(catalog.Assets()))
		for _, spec := range catalog.Assets() {
			if spec.Native() {
				continue
			}
			balances = append(balances, ledger.Balance{Code: spec.Code, Issuer: spec.Issuer, Amount: "1000000"})
		}
		mock.SeedAccount(keys.Address(), 0, balances)
		return mock, nil
	default:
		return ledger.NewGateway(cfg.Ledger.GatewayURL, cfg.Ledger.RequestTimeout.Std())
	}
}
