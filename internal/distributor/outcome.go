package distributor

// Outcome is the terminal result of submitting one batch.
type Outcome struct {
	// Hash is set when the ledger accepted a transaction for this batch.
	Hash string
	// ExcludedAssets counts operations pruned for missing authorization
	// before the accepted transaction; non-zero only with a Hash.
	ExcludedAssets int
	// FailureReason is set, already scrubbed of secret material, when the
	// batch reached a permanent failure.
	FailureReason string
}

func successOutcome(hash string, excluded int) Outcome {
	return Outcome{Hash: hash, ExcludedAssets: excluded}
}

func failureOutcome(reason string) Outcome {
	return Outcome{FailureReason: reason}
}

// Succeeded reports whether the batch produced a transaction hash.
func (o Outcome) Succeeded() bool {
	return o.Hash != ""
}

// Partial reports whether the batch succeeded with some assets excluded.
func (o Outcome) Partial() bool {
	return o.Succeeded() && o.ExcludedAssets > 0
}
