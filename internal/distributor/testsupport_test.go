package distributor

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"stardrop/go-backend/internal/asset"
	"stardrop/go-backend/internal/ledger"
	"stardrop/go-backend/internal/platform/secretlog"
	"stardrop/go-backend/internal/wallet"
)

const (
	testDistributorSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	testTargetSeed      = "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb"
	testNetwork         = "stardrop testnet"
)

func testKeys(t *testing.T, seedHex string) *wallet.KeyPair {
	t.Helper()
	kp, err := wallet.FromSeedHex(seedHex)
	if err != nil {
		t.Fatalf("FromSeedHex: %v", err)
	}
	return kp
}

type submitStep struct {
	hash string
	err  error
}

// scriptedClient plays back a fixed sequence of submit results and records
// every call the submitter makes.
type scriptedClient struct {
	mu       sync.Mutex
	sequence int64
	loadErr  error
	steps    []submitStep

	loads   int
	submits []ledger.SignedTransaction
}

func (c *scriptedClient) LoadAccount(context.Context, string) (ledger.AccountSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	if c.loadErr != nil {
		return ledger.AccountSnapshot{}, c.loadErr
	}
	c.sequence++
	return ledger.AccountSnapshot{Sequence: c.sequence}, nil
}

func (c *scriptedClient) SubmitTransaction(_ context.Context, tx ledger.SignedTransaction) (ledger.SubmitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submits = append(c.submits, tx)
	if len(c.steps) == 0 {
		return ledger.SubmitResult{Hash: fmt.Sprintf("hash-%d", len(c.submits))}, nil
	}
	step := c.steps[0]
	c.steps = c.steps[1:]
	if step.err != nil {
		return ledger.SubmitResult{}, step.err
	}
	return ledger.SubmitResult{Hash: step.hash}, nil
}

type testHarness struct {
	submitter *Submitter
	client    *scriptedClient
	target    string
	sleeps    []time.Duration
	clock     time.Time
}

func newTestHarness(t *testing.T, steps ...submitStep) *testHarness {
	t.Helper()
	h := &testHarness{
		client: &scriptedClient{steps: steps},
		clock:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	keys := testKeys(t, testDistributorSeed)
	h.target = testKeys(t, testTargetSeed).Address()
	h.submitter = NewSubmitter(h.client, keys, testNetwork, secretlog.NewScrubber(testDistributorSeed), nil)
	h.submitter.now = func() time.Time { return h.clock }
	h.submitter.sleep = func(_ context.Context, d time.Duration) error {
		h.sleeps = append(h.sleeps, d)
		h.clock = h.clock.Add(d)
		return nil
	}
	return h
}

func specList(n int) []asset.Spec {
	specs := make([]asset.Spec, n)
	for i := range specs {
		specs[i] = asset.Spec{Code: fmt.Sprintf("AST%d", i), Amount: "1"}
	}
	return specs
}

func submittedCodes(tx ledger.SignedTransaction) []string {
	codes := make([]string, 0, len(tx.Envelope.Operations))
	for _, op := range tx.Envelope.Operations {
		codes = append(codes, op.AssetCode)
	}
	return codes
}
