package distributor

import (
	"fmt"
	"strings"

	"stardrop/go-backend/internal/asset"
	"stardrop/go-backend/internal/ledger"
)

// PreflightError reports every configured asset the distributor account
// cannot yet hold. A single missing trustline blocks the whole service.
type PreflightError struct {
	Missing []asset.Key
}

func (e *PreflightError) Error() string {
	pairs := make([]string, 0, len(e.Missing))
	for _, k := range e.Missing {
		pairs = append(pairs, k.String())
	}
	return fmt.Sprintf("distributor account is missing trustlines for: %s", strings.Join(pairs, ", "))
}

// MissingTrustlines returns the (code, issuer) pairs in required that the
// balance set does not cover. Native assets are exempt by definition.
// Input order of required is preserved in the result.
func MissingTrustlines(balances []ledger.Balance, required []asset.Spec) []asset.Key {
	held := make(map[asset.Key]struct{}, len(balances))
	for _, b := range balances {
		held[asset.Key{Code: b.Code, Issuer: b.Issuer}] = struct{}{}
	}

	var missing []asset.Key
	seen := make(map[asset.Key]struct{}, len(required))
	for _, spec := range required {
		if spec.Native() {
			continue
		}
		key := spec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := held[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// CheckTrustlines is the fail-closed form: a non-empty missing set becomes a
// PreflightError, an empty one succeeds silently.
func CheckTrustlines(balances []ledger.Balance, required []asset.Spec) error {
	if missing := MissingTrustlines(balances, required); len(missing) > 0 {
		return &PreflightError{Missing: missing}
	}
	return nil
}
