package asset

import (
	"errors"
	"fmt"
	"strings"

	"stardrop/go-backend/internal/wallet"
)

// Spec describes one asset grant: code, issuing account and the amount
// handed out per distribution. An empty issuer denotes the native asset.
// Specs are validated once at catalog load and treated as immutable values
// downstream.
type Spec struct {
	Code   string
	Issuer string
	Amount string
}

// Key identifies an asset independent of amount.
type Key struct {
	Code   string
	Issuer string
}

// NativeCode is the display code of the ledger's native asset. Native
// specs carry no issuer.
const NativeCode = "LUM"

const (
	maxCodeLen        = 12
	maxAmountFraction = 7
)

var (
	ErrEmptyCode     = errors.New("asset code must not be empty")
	ErrBadCode       = errors.New("asset code must be alphanumeric and at most 12 characters")
	ErrBadIssuer     = errors.New("asset issuer must be empty (native) or a valid account address")
	ErrBadAmount     = errors.New("asset amount must be a positive decimal with at most 7 fractional digits")
	ErrEmptyCatalog  = errors.New("asset catalog is empty")
	ErrDuplicateSpec = errors.New("asset catalog contains a duplicate (code, issuer) pair")
)

// Native reports whether the spec refers to the native asset.
func (s Spec) Native() bool {
	return s.Issuer == ""
}

// Key returns the (code, issuer) identity of the spec.
func (s Spec) Key() Key {
	return Key{Code: s.Code, Issuer: s.Issuer}
}

func (s Spec) String() string {
	if s.Native() {
		return s.Code
	}
	return s.Code + ":" + s.Issuer
}

func (k Key) String() string {
	if k.Issuer == "" {
		return k.Code
	}
	return k.Code + ":" + k.Issuer
}

// Validate enforces the catalog-load invariants. Downstream components rely
// on specs never being re-validated.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Code) == "" {
		return ErrEmptyCode
	}
	if len(s.Code) > maxCodeLen || !isAlphanumeric(s.Code) {
		return fmt.Errorf("%w: %q", ErrBadCode, s.Code)
	}
	if s.Issuer != "" && !wallet.IsValidAddress(s.Issuer) {
		return fmt.Errorf("%w: %q", ErrBadIssuer, s.Issuer)
	}
	if !isPositiveDecimal(s.Amount) {
		return fmt.Errorf("%w: %q", ErrBadAmount, s.Amount)
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// isPositiveDecimal accepts strings like "10", "0.5", "12.0000001" and
// rejects zero, negatives, exponents and overlong fractions.
func isPositiveDecimal(s string) bool {
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" || !isDigits(whole) {
		return false
	}
	if hasDot && (frac == "" || len(frac) > maxAmountFraction || !isDigits(frac)) {
		return false
	}
	for _, r := range whole + frac {
		if r != '0' {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
