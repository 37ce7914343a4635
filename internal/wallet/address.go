package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58"
)

// Account addresses are base58check strings: a version byte, the 32-byte
// ed25519 public key, and a 4-byte double-SHA256 checksum. The decoded
// payload has a fixed length, so malformed or truncated addresses are
// rejected before any ledger call is made.
const (
	addressVersionByte = 0x41
	addressPayloadLen  = 1 + ed25519.PublicKeySize + addressChecksumLen
	addressChecksumLen = 4
)

var (
	ErrInvalidAddress = errors.New("invalid account address")
)

// EncodeAddress renders a public key as an account address.
func EncodeAddress(pub ed25519.PublicKey) string {
	payload := make([]byte, 0, addressPayloadLen)
	payload = append(payload, addressVersionByte)
	payload = append(payload, pub...)
	payload = append(payload, checksum(payload)...)
	return base58.Encode(payload)
}

// DecodeAddress parses and verifies an account address, returning the
// embedded public key.
func DecodeAddress(addr string) (ed25519.PublicKey, error) {
	payload, err := base58.Decode(addr)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	if len(payload) != addressPayloadLen {
		return nil, ErrInvalidAddress
	}
	if payload[0] != addressVersionByte {
		return nil, ErrInvalidAddress
	}
	body := payload[:addressPayloadLen-addressChecksumLen]
	sum := payload[addressPayloadLen-addressChecksumLen:]
	want := checksum(body)
	for i := range sum {
		if sum[i] != want[i] {
			return nil, ErrInvalidAddress
		}
	}
	return ed25519.PublicKey(body[1:]), nil
}

// IsValidAddress reports whether addr is a well-formed account address.
func IsValidAddress(addr string) bool {
	_, err := DecodeAddress(addr)
	return err == nil
}

func checksum(body []byte) []byte {
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	return second[:addressChecksumLen]
}
