package distributor

import "stardrop/go-backend/internal/asset"

// MaxOpsPerTx bounds how many claimable-transfer operations fit in one
// transaction.
const MaxOpsPerTx = 100

// PlanBatches splits an ordered asset list into ordered batches of at most
// MaxOpsPerTx, whose concatenation reproduces the input exactly.
func PlanBatches(assets []asset.Spec) [][]asset.Spec {
	if len(assets) == 0 {
		return nil
	}
	batches := make([][]asset.Spec, 0, (len(assets)+MaxOpsPerTx-1)/MaxOpsPerTx)
	for start := 0; start < len(assets); start += MaxOpsPerTx {
		end := start + MaxOpsPerTx
		if end > len(assets) {
			end = len(assets)
		}
		batches = append(batches, assets[start:end:end])
	}
	return batches
}
