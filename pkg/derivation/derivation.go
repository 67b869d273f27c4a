// Package derivation implements the deterministic address derivation scheme
// used by the daemon both to locate per-user records and to compute
// program-owned signing authorities.
//
// Regular addresses are X coordinates of secp256k1 public keys. A derived
// address is the SHA-256 digest of the given seeds plus a bump byte, accepted
// only if the digest is NOT a valid X coordinate. This guarantees a derived
// address can never collide with an address obtained through normal keypair
// generation, which is what makes the (seeds, bump) pair usable as an
// authorization credential: whoever can reproduce the seeds proves control
// of the address.
package derivation

import (
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// AddressLen is the byte length of every address handled by this package.
const AddressLen = 32

// addressSuffix domain-separates derived addresses from any other use of
// SHA-256 over the same seed material.
const addressSuffix = "poolvault-derived-address"

var (
	// ErrNoViableBump is returned when no bump in [0,255] pushes the digest
	// off the curve. With ~1/2 probability per candidate this is unreachable
	// in practice.
	ErrNoViableBump = errors.New("no viable bump for the given seeds")
	// ErrAddressOnCurve is returned by DeriveWithBump when the provided bump
	// yields a digest that is a valid public key X coordinate.
	ErrAddressOnCurve = errors.New("derived address lands on the curve")
)

// Derive maps a list of seeds to a deterministic 32-byte address plus the
// bump byte that places it outside the regular keyspace. The search starts
// at 255 and counts down so the result is stable across invocations.
func Derive(seeds ...[]byte) ([AddressLen]byte, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		candidate := hashSeeds(seeds, uint8(bump))
		if !isOnCurve(candidate) {
			return candidate, uint8(bump), nil
		}
	}
	return [AddressLen]byte{}, 0, ErrNoViableBump
}

// DeriveWithBump recomputes the address for a known (seeds, bump) pair. It
// is used to verify a derived-authority credential without re-running the
// bump search.
func DeriveWithBump(bump uint8, seeds ...[]byte) ([AddressLen]byte, error) {
	candidate := hashSeeds(seeds, bump)
	if isOnCurve(candidate) {
		return [AddressLen]byte{}, ErrAddressOnCurve
	}
	return candidate, nil
}

func hashSeeds(seeds [][]byte, bump uint8) [AddressLen]byte {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{bump})
	h.Write([]byte(addressSuffix))

	var addr [AddressLen]byte
	copy(addr[:], h.Sum(nil))
	return addr
}

// isOnCurve reports whether addr is the X coordinate of a valid secp256k1
// point, ie. whether it could have been produced by regular key generation.
func isOnCurve(addr [AddressLen]byte) bool {
	compressed := make([]byte, 0, AddressLen+1)
	compressed = append(compressed, 0x02)
	compressed = append(compressed, addr[:]...)
	_, err := btcec.ParsePubKey(compressed)
	return err == nil
}
