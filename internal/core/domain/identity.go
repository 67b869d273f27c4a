package domain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// IdentityLen is the byte length of every identity and address handled by
// the daemon.
const IdentityLen = 32

// Identity is an opaque 32-byte key identifying a principal, an asset type
// or an account slot.
type Identity [IdentityLen]byte

// IdentityFromBytes returns the Identity wrapping the given buffer, or
// ErrInvalidIdentity if the buffer is not exactly 32 bytes.
func IdentityFromBytes(buf []byte) (Identity, error) {
	var id Identity
	if len(buf) != IdentityLen {
		return id, ErrInvalidIdentity
	}
	copy(id[:], buf)
	return id, nil
}

// IdentityFromHex parses an identity from its hex representation.
func IdentityFromHex(str string) (Identity, error) {
	buf, err := hex.DecodeString(str)
	if err != nil {
		return Identity{}, fmt.Errorf("decoding identity: %w", err)
	}
	return IdentityFromBytes(buf)
}

func (i Identity) String() string {
	return hex.EncodeToString(i[:])
}

// IsZero ...
func (i Identity) IsZero() bool {
	return i == Identity{}
}

// MarshalJSON renders the identity as its hex representation.
func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON parses an identity from its hex representation.
func (i *Identity) UnmarshalJSON(buf []byte) error {
	var str string
	if err := json.Unmarshal(buf, &str); err != nil {
		return err
	}
	id, err := IdentityFromHex(str)
	if err != nil {
		return err
	}
	*i = id
	return nil
}
