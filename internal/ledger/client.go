package ledger

import (
	"context"
	"fmt"
	"strings"
)

// Balance is one asset held by an account. Issuer is empty for the native
// asset.
type Balance struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer"`
	Amount string `json:"amount"`
}

// AccountSnapshot is the state the submitter needs before each attempt. The
// sequence number changes with every committed transaction from the account,
// so a snapshot is never reused across attempts.
type AccountSnapshot struct {
	Sequence int64     `json:"sequence"`
	Balances []Balance `json:"balances"`
}

// SubmitResult carries the transaction hash of an accepted submission.
type SubmitResult struct {
	Hash string `json:"hash"`
}

// Client is the capability interface over the ledger endpoint. The core
// never implements ledger semantics itself; it consumes this interface.
type Client interface {
	LoadAccount(ctx context.Context, address string) (AccountSnapshot, error)
	SubmitTransaction(ctx context.Context, tx SignedTransaction) (SubmitResult, error)
}

// Transaction-level result codes.
const (
	TxBadSeq          = "tx_bad_seq"
	TxTooLate         = "tx_too_late"
	TxInsufficientFee = "tx_insufficient_fee"
	TxFailed          = "tx_failed"
)

// Operation-level result codes reported inside a tx_failed result, ordered
// to match the submitted operations.
const (
	OpSuccess     = "op_success"
	OpNoTrust     = "op_no_trust"
	OpUnderfunded = "op_underfunded"
)

// SubmitError is the structured rejection returned by the ledger endpoint.
// Any submission failure that is not a SubmitError is a transport failure
// with no structured response.
type SubmitError struct {
	TransactionCode string   `json:"transaction_code"`
	OperationCodes  []string `json:"operation_codes,omitempty"`
}

func (e *SubmitError) Error() string {
	if len(e.OperationCodes) == 0 {
		return fmt.Sprintf("transaction rejected: %s", e.TransactionCode)
	}
	return fmt.Sprintf("transaction rejected: %s [%s]", e.TransactionCode, strings.Join(e.OperationCodes, " "))
}
