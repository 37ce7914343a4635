package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"stardrop/go-backend/internal/asset"
	"stardrop/go-backend/internal/distributor"
	"stardrop/go-backend/internal/ledger"
	"stardrop/go-backend/internal/platform/metrics"
	"stardrop/go-backend/internal/platform/ratelimiter"
)

// Service fronts one distributor account: it runs the startup preflight,
// admits inbound address submissions, and drives distributions to a reply.
type Service struct {
	logger          *slog.Logger
	catalog         asset.Catalog
	primaryAmount   string
	client          ledger.Client
	orchestrator    *distributor.Orchestrator
	limiter         *ratelimiter.KeyedLimiter
	notifier        Notifier
	distributorAddr string

	ready atomic.Bool
	now   func() time.Time
}

type Options struct {
	Logger          *slog.Logger
	Catalog         asset.Catalog
	PrimaryAmount   string
	Client          ledger.Client
	Orchestrator    *distributor.Orchestrator
	Limiter         *ratelimiter.KeyedLimiter
	Notifier        Notifier
	DistributorAddr string
}

func New(opts Options) (*Service, error) {
	if opts.Catalog == nil || opts.Client == nil || opts.Orchestrator == nil {
		return nil, errors.New("service needs a catalog, a ledger client and an orchestrator")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	if opts.PrimaryAmount != "" {
		primary := asset.Spec{Code: asset.NativeCode, Amount: opts.PrimaryAmount}
		if err := primary.Validate(); err != nil {
			return nil, fmt.Errorf("primary amount: %w", err)
		}
	}
	return &Service{
		logger:          logger,
		catalog:         opts.Catalog,
		primaryAmount:   opts.PrimaryAmount,
		client:          opts.Client,
		orchestrator:    opts.Orchestrator,
		limiter:         opts.Limiter,
		notifier:        notifier,
		distributorAddr: opts.DistributorAddr,
		now:             time.Now,
	}, nil
}

// Start runs the trustline preflight. Serving begins only after it passes:
// a single missing trustline anywhere keeps the whole service down.
func (s *Service) Start(ctx context.Context) error {
	snapshot, err := s.client.LoadAccount(ctx, s.distributorAddr)
	if err != nil {
		return fmt.Errorf("preflight: load distributor account: %w", err)
	}
	if err := distributor.CheckTrustlines(snapshot.Balances, s.requestAssets()); err != nil {
		return fmt.Errorf("preflight: %w", err)
	}
	s.ready.Store(true)
	s.logger.Info("preflight passed",
		"distributor", s.distributorAddr, "balances", len(snapshot.Balances), "catalog", len(s.catalog.Assets()))
	return nil
}

// Ready reports whether the preflight has passed.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// HandleSubmission services one inbound address submission end to end and
// replies through the notifier. Safe for concurrent use; only the ledger
// submission path serializes internally.
func (s *Service) HandleSubmission(ctx context.Context, requesterID, address string) {
	if !s.ready.Load() {
		s.notifier.Notify(requesterID, "The distributor is still starting up, please try again shortly.")
		return
	}
	if !s.limiter.Allow(requesterID, s.now()) {
		// Flood-limited requests are dropped without a reply so an abusive
		// requester cannot turn the notifier into an amplifier.
		metrics.FloodRejections.Inc()
		s.logger.Warn("submission flood-limited", "requester", requesterID)
		return
	}

	result, err := s.orchestrator.Distribute(ctx, distributor.Request{
		RequesterID:   requesterID,
		TargetAddress: strings.TrimSpace(address),
		Assets:        s.requestAssets(),
	})
	switch {
	case errors.Is(err, distributor.ErrInvalidTarget):
		s.notifier.Notify(requesterID, "That doesn't look like a valid account address.")
		return
	case errors.Is(err, distributor.ErrCoolingDown):
		s.notifier.Notify(requesterID, "This address was funded recently. Please wait a minute before asking again.")
		return
	case err != nil:
		s.logger.Error("distribution failed", "requester", requesterID, "error", err)
		s.notifier.Notify(requesterID, "Something went wrong handling your request.")
		return
	}

	s.notifier.Notify(requesterID, formatResult(result))
}

// requestAssets assembles the full grant for one request: the primary
// native amount, when configured, followed by the catalog in order.
func (s *Service) requestAssets() []asset.Spec {
	catalog := s.catalog.Assets()
	if s.primaryAmount == "" {
		return catalog
	}
	assets := make([]asset.Spec, 0, len(catalog)+1)
	assets = append(assets, asset.Spec{Code: asset.NativeCode, Amount: s.primaryAmount})
	return append(assets, catalog...)
}

func formatResult(result distributor.Result) string {
	excluded := 0
	for _, o := range result.Outcomes {
		excluded += o.ExcludedAssets
	}

	switch {
	case result.FullySucceeded():
		return fmt.Sprintf("Your assets are on the way! Claimable in transaction(s): %s", strings.Join(result.Hashes, ", "))
	case result.Succeeded() && excluded > 0 && result.FailureReason() == "":
		return fmt.Sprintf(
			"Delivered with %d asset(s) skipped (missing authorization on your account). Transaction(s): %s",
			excluded, strings.Join(result.Hashes, ", "))
	case result.Succeeded():
		return fmt.Sprintf(
			"Partially delivered (transaction(s): %s), but one batch failed permanently: %s",
			strings.Join(result.Hashes, ", "), result.FailureReason())
	default:
		return "Could not deliver your assets: " + result.FailureReason()
	}
}
