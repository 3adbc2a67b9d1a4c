package noise

import (
	"context"
	"errors"
)

var (
	ErrNoBackend        = errors.New("no i2c backend available")
	ErrIdentityMismatch = errors.New("device identity mismatch")
	ErrIO               = errors.New("i2c transfer failed")
	ErrNotInitialized   = errors.New("device not initialized")
)

// Backend identifies the bus library a WordBus is built on.
type Backend int

const (
	BackendNone Backend = iota
	BackendPeriph
	BackendGobot
)

func (b Backend) String() string {
	switch b {
	case BackendPeriph:
		return "periph"
	case BackendGobot:
		return "gobot"
	default:
		return "none"
	}
}

type WordReader interface {
	ReadWord(ctx context.Context, address byte, register byte) (uint16, error)
}

type WordWriter interface {
	WriteWord(ctx context.Context, address byte, register byte, value uint16) error
}

// WordBus reads and writes 16-bit little-endian register words.
// A word spans two consecutive 8-bit registers, low byte first.
type WordBus interface {
	WordReader
	WordWriter
	Backend() Backend
	Close() error
}

// SplitWord returns the bytes stored at register N and N+1.
func SplitWord(value uint16) (low, high byte) {
	return byte(value & 0xFF), byte(value >> 8)
}

func JoinWord(low, high byte) uint16 {
	return uint16(low) | uint16(high)<<8
}
