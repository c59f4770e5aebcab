package keygen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// DefaultScheme is used when no scheme is configured.
const DefaultScheme = "solana"

// Scheme describes one supported key scheme.
type Scheme struct {
	Name        string
	Aliases     []string
	Description string

	// New creates a generator drawing from crypto/rand.
	New func() vanity.KeyGenerator

	// EncodePrivate renders a candidate's private material for display.
	EncodePrivate func(private []byte) string
}

var schemes = []Scheme{
	{
		Name:          "solana",
		Aliases:       []string{"ed25519"},
		Description:   "Ed25519 key pair, base58 public key (Solana address)",
		New:           func() vanity.KeyGenerator { return NewEd25519(nil) },
		EncodePrivate: EncodeEd25519Private,
	},
	{
		Name:          "secp256k1",
		Aliases:       []string{"schnorr"},
		Description:   "secp256k1 key pair, hex x-only public key (BIP-340)",
		New:           func() vanity.KeyGenerator { return NewSecp256k1(nil) },
		EncodePrivate: EncodeSecp256k1Private,
	},
}

// Lookup finds a scheme by name or alias, ignoring case.
func Lookup(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultScheme
	}
	for _, s := range schemes {
		if s.Name == name {
			return s, nil
		}
		for _, alias := range s.Aliases {
			if alias == name {
				return s, nil
			}
		}
	}
	return Scheme{}, fmt.Errorf("unknown key scheme %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Schemes returns a copy of every supported scheme, sorted by name.
func Schemes() []Scheme {
	out := append([]Scheme(nil), schemes...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted scheme names.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for _, s := range Schemes() {
		names = append(names, s.Name)
	}
	return names
}
