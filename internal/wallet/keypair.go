package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"
)

const hkdfInfoSigning = "stardrop/distributor/signing/v1"

var (
	ErrInvalidSeed     = errors.New("distributor seed must be 32 bytes of hex")
	ErrInvalidMnemonic = errors.New("distributor mnemonic is not a valid BIP-39 phrase")
)

// KeyPair holds the distributor signing key. The original secret string is
// kept only so it can be registered with the log scrubber; it never appears
// in any outbound value.
type KeyPair struct {
	priv   ed25519.PrivateKey
	pub    ed25519.PublicKey
	secret string
}

// FromSeedHex derives the signing key from a 32-byte hex seed.
func FromSeedHex(seedHex string) (*KeyPair, error) {
	seedHex = strings.TrimSpace(seedHex)
	seed, err := hex.DecodeString(seedHex)
	if err != nil || len(seed) != 32 {
		return nil, ErrInvalidSeed
	}
	return fromSeed(seed, seedHex)
}

// FromMnemonic derives the signing key from a BIP-39 mnemonic phrase.
func FromMnemonic(mnemonic, passphrase string) (*KeyPair, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	return fromSeed(seed, mnemonic)
}

func fromSeed(seed []byte, secret string) (*KeyPair, error) {
	signingSeed, err := hkdfExpand(seed, hkdfInfoSigning, ed25519.SeedSize)
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(signingSeed)
	return &KeyPair{
		priv:   priv,
		pub:    priv.Public().(ed25519.PublicKey),
		secret: secret,
	}, nil
}

// Address returns the distributor account address.
func (k *KeyPair) Address() string {
	return EncodeAddress(k.pub)
}

// Sign signs a transaction digest.
func (k *KeyPair) Sign(digest []byte) []byte {
	return ed25519.Sign(k.priv, digest)
}

// PublicKey returns the verification key.
func (k *KeyPair) PublicKey() ed25519.PublicKey {
	return k.pub
}

// SecretString exposes the raw secret exactly once, for scrubber
// registration at startup.
func (k *KeyPair) SecretString() string {
	return k.secret
}

func hkdfExpand(seed []byte, info string, outLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, seed, nil, []byte(info))
	out := make([]byte, outLen)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}
