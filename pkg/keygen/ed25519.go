package keygen

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// Base58Alphabet is the Bitcoin/Solana base58 alphabet.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	// Ed25519SeedSize is the size of an Ed25519 private seed.
	Ed25519SeedSize = 32
	// Ed25519PublicKeySize is the size of an encoded Ed25519 public key.
	Ed25519PublicKeySize = 32
)

// Ed25519 generates Solana-style key pairs: the identifier is the base58 encoding of the
// 32-byte Ed25519 public key and the private material is seed || public key (64 bytes), the
// layout Solana keypair files use.
type Ed25519 struct {
	random io.Reader
}

// NewEd25519 creates a generator reading seeds from random. A nil reader means crypto/rand.
// The reader must be safe for concurrent use when the generator is shared by several workers.
func NewEd25519(random io.Reader) *Ed25519 {
	if random == nil {
		random = rand.Reader
	}
	return &Ed25519{random: random}
}

// Name returns the name of this generator.
func (g *Ed25519) Name() string {
	return "solana"
}

// Alphabet returns the characters a base58 identifier can contain.
func (g *Ed25519) Alphabet() string {
	return Base58Alphabet
}

// Generate creates one key pair.
func (g *Ed25519) Generate() (vanity.Candidate, error) {
	seed := make([]byte, Ed25519SeedSize)
	if _, err := io.ReadFull(g.random, seed); err != nil {
		return vanity.Candidate{}, fmt.Errorf("read seed: %w", err)
	}

	pub, err := Ed25519PublicKey(seed)
	if err != nil {
		return vanity.Candidate{}, err
	}

	private := make([]byte, 0, Ed25519SeedSize+Ed25519PublicKeySize)
	private = append(private, seed...)
	private = append(private, pub...)

	return vanity.Candidate{
		Private:          private,
		PublicIdentifier: base58.Encode(pub),
	}, nil
}

// Ed25519PublicKey derives the public key A = a*B from a 32-byte seed, where a is the clamped
// lower half of SHA-512(seed) as defined by RFC 8032.
func Ed25519PublicKey(seed []byte) ([]byte, error) {
	if len(seed) != Ed25519SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", Ed25519SeedSize, len(seed))
	}

	h := sha512.Sum512(seed)
	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, fmt.Errorf("clamp scalar: %w", err)
	}

	return new(edwards25519.Point).ScalarBaseMult(scalar).Bytes(), nil
}

// EncodeEd25519Private renders seed || public key as base58, the format wallets import.
func EncodeEd25519Private(private []byte) string {
	return base58.Encode(private)
}
