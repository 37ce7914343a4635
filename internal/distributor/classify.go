package distributor

import (
	"errors"

	"stardrop/go-backend/internal/ledger"
)

// errorKind is the closed taxonomy of submission failures. Raw ledger codes
// are decoded into it exactly once; everything downstream matches on the
// kind, never on code strings.
type errorKind int

const (
	kindNetworkTransient errorKind = iota
	kindSequenceTransient
	kindExpiredTransient
	kindFeeTransient
	kindPartialRejection
	kindResourceExhaustion
	kindUnclassified
)

func (k errorKind) String() string {
	switch k {
	case kindNetworkTransient:
		return "network_transient"
	case kindSequenceTransient:
		return "sequence_transient"
	case kindExpiredTransient:
		return "expired_transient"
	case kindFeeTransient:
		return "fee_transient"
	case kindPartialRejection:
		return "partial_rejection"
	case kindResourceExhaustion:
		return "resource_exhaustion"
	default:
		return "unclassified"
	}
}

func (k errorKind) transient() bool {
	switch k {
	case kindNetworkTransient, kindSequenceTransient, kindExpiredTransient, kindFeeTransient:
		return true
	}
	return false
}

type classified struct {
	kind errorKind
	// rejectedOps lists the operation indices that lacked authorization,
	// set only for kindPartialRejection.
	rejectedOps []int
}

// classifySubmitError decodes a submission failure. A failure without a
// structured rejection is a transport problem and always retriable. When a
// single rejection carries codes of more than one kind, resource exhaustion
// takes precedence over authorization pruning: retrying an underfunded
// distributor cannot succeed no matter how many operations are dropped.
func classifySubmitError(err error) classified {
	var rejection *ledger.SubmitError
	if !errors.As(err, &rejection) {
		return classified{kind: kindNetworkTransient}
	}

	switch rejection.TransactionCode {
	case ledger.TxBadSeq:
		return classified{kind: kindSequenceTransient}
	case ledger.TxTooLate:
		return classified{kind: kindExpiredTransient}
	case ledger.TxInsufficientFee:
		return classified{kind: kindFeeTransient}
	case ledger.TxFailed:
		var rejected []int
		for i, code := range rejection.OperationCodes {
			switch code {
			case ledger.OpUnderfunded:
				return classified{kind: kindResourceExhaustion}
			case ledger.OpNoTrust:
				rejected = append(rejected, i)
			}
		}
		if len(rejected) > 0 {
			return classified{kind: kindPartialRejection, rejectedOps: rejected}
		}
		return classified{kind: kindUnclassified}
	default:
		return classified{kind: kindUnclassified}
	}
}
