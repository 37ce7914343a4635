package distributor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"stardrop/go-backend/internal/asset"
	"stardrop/go-backend/internal/platform/metrics"
	"stardrop/go-backend/internal/wallet"
)

var (
	ErrInvalidTarget = errors.New("target address is not a valid account address")
	ErrCoolingDown   = errors.New("requester is cooling down for this address")
	ErrNoAssets      = errors.New("distribution request carries no assets")
)

// Request is one inbound address submission to fulfil.
type Request struct {
	RequesterID   string
	TargetAddress string
	Assets        []asset.Spec
}

// Result aggregates the per-batch outcomes of one distribution in batch
// order. Hashes accumulates every accepted transaction, so a later batch's
// permanent failure still leaves the earlier successes reported.
type Result struct {
	Outcomes []Outcome
	Hashes   []string
}

// Succeeded reports whether at least one batch produced a hash.
func (r Result) Succeeded() bool {
	return len(r.Hashes) > 0
}

// FullySucceeded reports whether every batch produced a hash with no assets
// excluded.
func (r Result) FullySucceeded() bool {
	if len(r.Outcomes) == 0 {
		return false
	}
	for _, o := range r.Outcomes {
		if !o.Succeeded() || o.ExcludedAssets > 0 {
			return false
		}
	}
	return true
}

// FailureReason returns the reason of the first permanently failed batch.
func (r Result) FailureReason() string {
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			return o.FailureReason
		}
	}
	return ""
}

// Orchestrator sequences one distribution: address validation, cooldown
// admission, batch planning, in-order submission, result aggregation.
type Orchestrator struct {
	submitter *Submitter
	cooldown  *CooldownGuard
	logger    *slog.Logger
	now       func() time.Time
}

func NewOrchestrator(submitter *Submitter, cooldown *CooldownGuard, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		submitter: submitter,
		cooldown:  cooldown,
		logger:    logger,
		now:       time.Now,
	}
}

// Distribute runs one request to completion. Batches are submitted strictly
// in sequence; a permanent batch failure stops the run, and the outcomes
// accumulated so far are returned alongside it. The cooldown is recorded
// only when at least one batch produced a hash.
func (o *Orchestrator) Distribute(ctx context.Context, req Request) (Result, error) {
	if !wallet.IsValidAddress(req.TargetAddress) {
		return Result{}, ErrInvalidTarget
	}
	if len(req.Assets) == 0 {
		return Result{}, ErrNoAssets
	}
	if !o.cooldown.Admit(req.RequesterID, req.TargetAddress, o.now()) {
		metrics.CooldownRejections.Inc()
		return Result{}, ErrCoolingDown
	}

	batches := PlanBatches(req.Assets)
	o.logger.Info("distribution started",
		"requester", req.RequesterID, "assets", len(req.Assets), "batches", len(batches))

	var result Result
	for i, batch := range batches {
		outcome := o.submitter.SubmitBatch(ctx, req.TargetAddress, batch)
		result.Outcomes = append(result.Outcomes, outcome)
		if !outcome.Succeeded() {
			o.logger.Warn("batch failed permanently",
				"requester", req.RequesterID, "batch", i, "reason", outcome.FailureReason)
			break
		}
		result.Hashes = append(result.Hashes, outcome.Hash)
	}

	if result.Succeeded() {
		o.cooldown.RecordSuccess(req.RequesterID, req.TargetAddress, o.now())
	}

	switch {
	case result.FullySucceeded():
		metrics.Distributions.WithLabelValues("success").Inc()
	case result.Succeeded():
		metrics.Distributions.WithLabelValues("partial").Inc()
	default:
		metrics.Distributions.WithLabelValues("failure").Inc()
	}
	return result, nil
}
