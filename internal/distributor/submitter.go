package distributor

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"stardrop/go-backend/internal/asset"
	"stardrop/go-backend/internal/ledger"
	"stardrop/go-backend/internal/platform/metrics"
	"stardrop/go-backend/internal/platform/secretlog"
	"stardrop/go-backend/internal/wallet"
)

const (
	// maxAttempts is the shared retry budget per batch, covering transient
	// retries and authorization pruning alike.
	maxAttempts = 5

	shortRetryBackoff = 1 * time.Second
	longRetryBackoff  = 5 * time.Second

	// validityWindow bounds how long a built transaction may wait for
	// inclusion; it is recomputed on every attempt.
	validityWindow = 180 * time.Second
)

// Submitter builds, signs and submits one batch per call, driving the
// retry/error-classification state machine to a terminal outcome. It holds
// the signing key; no secret material leaves it unscrubbed.
type Submitter struct {
	client   ledger.Client
	keys     *wallet.KeyPair
	network  string
	scrubber *secretlog.Scrubber
	logger   *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// submitSlot serializes every submission from the distributor account.
	// Concurrent submissions would race on the account sequence number and
	// burn the retry budget on spurious stale-sequence rejections.
	submitSlot sync.Mutex
}

func NewSubmitter(client ledger.Client, keys *wallet.KeyPair, networkPassphrase string, scrubber *secretlog.Scrubber, logger *slog.Logger) *Submitter {
	if scrubber == nil {
		scrubber = secretlog.NewScrubber()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Submitter{
		client:   client,
		keys:     keys,
		network:  networkPassphrase,
		scrubber: scrubber,
		logger:   logger,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// SubmitBatch runs one batch to a terminal outcome. The batch may shrink
// across attempts when the ledger rejects individual operations for missing
// authorization; survivor order is preserved.
func (s *Submitter) SubmitBatch(ctx context.Context, targetAddress string, batch []asset.Spec) Outcome {
	if len(batch) == 0 {
		return failureOutcome("nothing to submit")
	}

	s.submitSlot.Lock()
	defer s.submitSlot.Unlock()

	current := append([]asset.Spec(nil), batch...)
	excluded := 0

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		hash, err := s.attempt(ctx, targetAddress, current)
		if err == nil {
			metrics.SubmissionAttempts.WithLabelValues("accepted").Inc()
			s.logger.Info("batch accepted",
				"hash", hash, "operations", len(current), "excluded", excluded, "attempt", attempt)
			return successOutcome(hash, excluded)
		}

		cls := classifySubmitError(err)
		metrics.SubmissionAttempts.WithLabelValues(cls.kind.String()).Inc()
		s.logger.Warn("submission attempt failed",
			"attempt", attempt, "kind", cls.kind.String(), "error", s.scrubber.ScrubError(err))

		switch cls.kind {
		case kindResourceExhaustion:
			return failureOutcome("distributor underfunded")
		case kindUnclassified:
			return failureOutcome(s.scrubber.ScrubError(err))
		case kindPartialRejection:
			var dropped int
			current, dropped = pruneRejected(current, cls.rejectedOps)
			excluded += dropped
			if len(current) == 0 {
				return failureOutcome("no eligible operations remain: recipient missing required authorization")
			}
			// Retry the reduced batch immediately; pruning consumes an
			// attempt from the shared budget.
		default:
			if attempt < maxAttempts {
				if serr := s.sleep(ctx, backoffFor(cls.kind)); serr != nil {
					return failureOutcome("submission aborted: " + s.scrubber.Scrub(serr.Error()))
				}
			}
		}
	}

	return failureOutcome("retry budget exhausted")
}

// attempt performs one full submission cycle: fresh snapshot, rebuilt
// validity window, sign, submit.
func (s *Submitter) attempt(ctx context.Context, targetAddress string, specs []asset.Spec) (string, error) {
	snapshot, err := s.client.LoadAccount(ctx, s.keys.Address())
	if err != nil {
		return "", err
	}

	ops := make([]ledger.Operation, 0, len(specs))
	for _, spec := range specs {
		ops = append(ops, ledger.Operation{
			AssetCode:   spec.Code,
			AssetIssuer: spec.Issuer,
			Amount:      spec.Amount,
			Claimant:    targetAddress,
		})
	}
	tx := ledger.Transaction{
		SourceAccount: s.keys.Address(),
		Sequence:      snapshot.Sequence + 1,
		Fee:           ledger.BaseFeeUnits * int64(len(ops)),
		ValidUntil:    s.now().Add(validityWindow),
		Operations:    ops,
	}

	result, err := s.client.SubmitTransaction(ctx, tx.Sign(s.network, s.keys.Sign))
	if err != nil {
		return "", err
	}
	return result.Hash, nil
}

// pruneRejected drops the rejected indices in one pass over a fresh slice,
// preserving survivor order. Indices outside the batch are ignored.
func pruneRejected(specs []asset.Spec, rejectedIdx []int) ([]asset.Spec, int) {
	rejected := make(map[int]struct{}, len(rejectedIdx))
	for _, i := range rejectedIdx {
		if i >= 0 && i < len(specs) {
			rejected[i] = struct{}{}
		}
	}
	if len(rejected) == 0 {
		return specs, 0
	}
	survivors := make([]asset.Spec, 0, len(specs)-len(rejected))
	for i, spec := range specs {
		if _, drop := rejected[i]; !drop {
			survivors = append(survivors, spec)
		}
	}
	return survivors, len(specs) - len(survivors)
}

func backoffFor(kind errorKind) time.Duration {
	switch kind {
	case kindSequenceTransient, kindExpiredTransient:
		return shortRetryBackoff
	default:
		return longRetryBackoff
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
