package distributor

import (
	"testing"

	"stardrop/go-backend/internal/asset"
)

func TestPlanBatchesSizesAndOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n           int
		wantBatches int
	}{
		{0, 0},
		{1, 1},
		{99, 1},
		{100, 1},
		{101, 2},
		{200, 2},
		{250, 3},
	}
	for _, tc := range tests {
		specs := specList(tc.n)
		batches := PlanBatches(specs)
		if len(batches) != tc.wantBatches {
			t.Fatalf("n=%d: want %d batches, got %d", tc.n, tc.wantBatches, len(batches))
		}

		var flattened []asset.Spec
		for _, b := range batches {
			if len(b) == 0 || len(b) > MaxOpsPerTx {
				t.Fatalf("n=%d: batch size %d out of bounds", tc.n, len(b))
			}
			flattened = append(flattened, b...)
		}
		if len(flattened) != tc.n {
			t.Fatalf("n=%d: concatenation has %d specs", tc.n, len(flattened))
		}
		for i := range flattened {
			if flattened[i] != specs[i] {
				t.Fatalf("n=%d: order broken at %d", tc.n, i)
			}
		}
	}
}

func TestPlanBatchesDoesNotAliasAppends(t *testing.T) {
	t.Parallel()

	specs := specList(101)
	batches := PlanBatches(specs)
	// Appending to the first batch must not clobber the second.
	_ = append(batches[0], asset.Spec{Code: "EVIL", Amount: "1"})
	if batches[1][0] != specs[100] {
		t.Fatal("appending to one batch corrupted the next")
	}
}
