// Package store persists plan state through named durable slots with a
// debounced write-behind binding.
package store

import "errors"

var (
	// ErrSlotNotFound is returned by Read when the slot has never been written.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotCorrupt is returned by Read when the slot's content fails its
	// integrity check.
	ErrSlotCorrupt = errors.New("slot content is corrupt")
)

// Slot is a named durable byte slot, the single-profile key/value store the
// engine persists into. Implementations must make Write atomic with respect
// to a concurrent Read of the same key.
type Slot interface {
	// Read returns the current content of the named slot. It returns
	// ErrSlotNotFound for a never-written key and an error wrapping
	// ErrSlotCorrupt when the stored bytes fail verification.
	Read(key string) ([]byte, error)

	// Write replaces the content of the named slot.
	Write(key string, data []byte) error

	// Close releases any resources held by the slot backend.
	Close() error
}
