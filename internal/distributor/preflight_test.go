package distributor

import (
	"errors"
	"strings"
	"testing"

	"stardrop/go-backend/internal/asset"
	"stardrop/go-backend/internal/ledger"
)

func TestMissingTrustlines(t *testing.T) {
	t.Parallel()

	balances := []ledger.Balance{
		{Code: "USDC", Issuer: "ISS1", Amount: "5000"},
	}
	required := []asset.Spec{
		{Code: "USDC", Issuer: "ISS1", Amount: "10"},
		{Code: "EUR", Issuer: "ISS2", Amount: "10"},
	}

	missing := MissingTrustlines(balances, required)
	if len(missing) != 1 || missing[0] != (asset.Key{Code: "EUR", Issuer: "ISS2"}) {
		t.Fatalf("want [{EUR ISS2}], got %v", missing)
	}
}

func TestMissingTrustlinesNativeExemptAndDedup(t *testing.T) {
	t.Parallel()

	required := []asset.Spec{
		{Code: "LUM", Amount: "25"},
		{Code: "EUR", Issuer: "ISS2", Amount: "10"},
		{Code: "EUR", Issuer: "ISS2", Amount: "20"},
	}
	missing := MissingTrustlines(nil, required)
	if len(missing) != 1 {
		t.Fatalf("native must be exempt and duplicates collapsed, got %v", missing)
	}
}

func TestCheckTrustlinesFailClosed(t *testing.T) {
	t.Parallel()

	required := []asset.Spec{
		{Code: "USDC", Issuer: "ISS1", Amount: "10"},
		{Code: "EUR", Issuer: "ISS2", Amount: "10"},
	}
	err := CheckTrustlines(nil, required)
	var pferr *PreflightError
	if !errors.As(err, &pferr) {
		t.Fatalf("want PreflightError, got %v", err)
	}
	if len(pferr.Missing) != 2 {
		t.Fatalf("every missing pair must be enumerated, got %v", pferr.Missing)
	}
	msg := err.Error()
	for _, fragment := range []string{"USDC:ISS1", "EUR:ISS2"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("error %q should name %s", msg, fragment)
		}
	}

	if err := CheckTrustlines([]ledger.Balance{{Code: "USDC", Issuer: "ISS1"}}, required[:1]); err != nil {
		t.Fatalf("satisfied trustlines must pass silently: %v", err)
	}
}
