package domain

import "context"

// SlotRepository gives access to the addressable record slots provided by
// the hosting storage layer. Each slot is an independently lockable byte
// buffer keyed by its 32-byte address.
type SlotRepository interface {
	// GetSlot returns the contents of the slot at the given address, or nil
	// if the slot was never written.
	GetSlot(ctx context.Context, address Identity) ([]byte, error)
	// GetOrCreateSlot returns the contents of the slot at the given address,
	// materializing a zero-filled buffer of the given size if the slot was
	// never written.
	GetOrCreateSlot(ctx context.Context, address Identity, size int) ([]byte, error)
	// UpdateSlot overwrites the contents of the slot at the given address.
	UpdateSlot(ctx context.Context, address Identity, data []byte) error
}
