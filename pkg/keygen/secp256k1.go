package keygen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// HexAlphabet is the alphabet of lower-case hex identifiers.
const HexAlphabet = "0123456789abcdef"

// Secp256k1 generates secp256k1 key pairs identified by their x-only public key (the 32-byte
// x coordinate used by BIP-340 Schnorr keys), hex encoded.
type Secp256k1 struct {
	random io.Reader
}

// NewSecp256k1 creates a generator reading key material from random. A nil reader means crypto/rand.
func NewSecp256k1(random io.Reader) *Secp256k1 {
	if random == nil {
		random = rand.Reader
	}
	return &Secp256k1{random: random}
}

// Name returns the name of this generator.
func (g *Secp256k1) Name() string {
	return "secp256k1"
}

// Alphabet returns the characters a hex identifier can contain.
func (g *Secp256k1) Alphabet() string {
	return HexAlphabet
}

// Generate creates one key pair.
func (g *Secp256k1) Generate() (vanity.Candidate, error) {
	priv, err := g.privateKey()
	if err != nil {
		return vanity.Candidate{}, err
	}

	// Drop the parity byte of the compressed encoding to get the x-only key.
	compressed := priv.PubKey().SerializeCompressed()

	return vanity.Candidate{
		Private:          priv.Serialize(),
		PublicIdentifier: hex.EncodeToString(compressed[1:]),
	}, nil
}

// privateKey draws 32 bytes until they form a scalar in [1, N-1].
func (g *Secp256k1) privateKey() (*secp256k1.PrivateKey, error) {
	var buf [32]byte
	for {
		if _, err := io.ReadFull(g.random, buf[:]); err != nil {
			return nil, fmt.Errorf("read key material: %w", err)
		}

		var k secp256k1.ModNScalar
		if overflow := k.SetBytes(&buf); overflow != 0 || k.IsZero() {
			continue
		}
		return secp256k1.NewPrivateKey(&k), nil
	}
}

// EncodeSecp256k1Private renders the 32-byte private scalar as hex.
func EncodeSecp256k1Private(private []byte) string {
	return hex.EncodeToString(private)
}
