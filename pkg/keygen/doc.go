// Package keygen provides the key-generation capability used by vanity searches.
//
// Two schemes are supported:
//
//   - solana (alias ed25519): Ed25519 key pairs. The public key is derived from a random seed
//     with filippo.io/edwards25519 and encoded in base58, which is a Solana address.
//   - secp256k1 (alias schnorr): secp256k1 key pairs from the decred implementation, identified
//     by the hex x-only public key.
//
// Both generators are safe for concurrent use as long as their random source is.
package keygen
