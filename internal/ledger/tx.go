package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// BaseFeeUnits is the offered fee per operation. The submitter never raises
// it dynamically; an insufficient-fee rejection is retried unchanged.
const BaseFeeUnits = 100

// Operation creates a claimable transfer: the amount is earmarked on the
// ledger for the claimant to redeem later, without the claimant needing a
// prior trustline.
type Operation struct {
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
	Amount      string `json:"amount"`
	Claimant    string `json:"claimant"`
}

// Transaction is the unsigned envelope for one batch.
type Transaction struct {
	SourceAccount string      `json:"source_account"`
	Sequence      int64       `json:"sequence"`
	Fee           int64       `json:"fee"`
	ValidUntil    time.Time   `json:"valid_until"`
	Operations    []Operation `json:"operations"`
}

// SignedTransaction pairs the envelope with its ed25519 signature over the
// network-scoped digest.
type SignedTransaction struct {
	Envelope  Transaction `json:"envelope"`
	Signature []byte      `json:"signature"`
}

// Digest computes the signing digest: a SHA-256 over the network passphrase
// and a deterministic binary encoding of the envelope.
func (t Transaction) Digest(networkPassphrase string) []byte {
	h := sha256.New()
	h.Write([]byte(networkPassphrase))
	writeString(h, t.SourceAccount)
	writeInt64(h, t.Sequence)
	writeInt64(h, t.Fee)
	writeInt64(h, t.ValidUntil.UTC().Unix())
	writeInt64(h, int64(len(t.Operations)))
	for _, op := range t.Operations {
		writeString(h, op.AssetCode)
		writeString(h, op.AssetIssuer)
		writeString(h, op.Amount)
		writeString(h, op.Claimant)
	}
	return h.Sum(nil)
}

// Sign produces the signed envelope using the supplied signing function.
func (t Transaction) Sign(networkPassphrase string, sign func(digest []byte) []byte) SignedTransaction {
	return SignedTransaction{Envelope: t, Signature: sign(t.Digest(networkPassphrase))}
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	writeInt64(h, int64(len(s)))
	h.Write([]byte(s))
}

func writeInt64(h interface{ Write([]byte) (int, error) }, v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}
