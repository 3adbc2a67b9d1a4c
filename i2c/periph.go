package i2c

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	noise "github.com/rockts/noise-db-converter"
)

var _ noise.WordBus = &PeriphBus{}

// PeriphBus accesses register words with a single combined transaction
// per operation through periph.io.
type PeriphBus struct {
	bus    i2c.Bus
	closer func() error
}

func NewPeriphBus(busNumber int) (*PeriphBus, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	for _, driver := range state.Loaded {
		slog.Debug("periph driver loaded", "driver", driver.String())
	}
	bus, err := i2creg.Open(strconv.Itoa(busNumber))
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus %d: %w", busNumber, err)
	}
	return &PeriphBus{bus: bus, closer: bus.Close}, nil
}

// NewPeriphBusFrom wraps an already opened periph bus. The caller keeps
// ownership of it.
func NewPeriphBusFrom(bus i2c.Bus) *PeriphBus {
	return &PeriphBus{bus: bus}
}

func (b *PeriphBus) ReadWord(ctx context.Context, address byte, register byte) (uint16, error) {
	buf := make([]byte, 2)
	err := b.bus.Tx(uint16(address), []byte{register}, buf)
	if err != nil {
		return 0, fmt.Errorf("could not read register %#02x from %#02x: %w: %w", register, address, noise.ErrIO, err)
	}
	return noise.JoinWord(buf[0], buf[1]), nil
}

func (b *PeriphBus) WriteWord(ctx context.Context, address byte, register byte, value uint16) error {
	low, high := noise.SplitWord(value)
	err := b.bus.Tx(uint16(address), []byte{register, low, high}, nil)
	if err != nil {
		return fmt.Errorf("could not write register %#02x to %#02x: %w: %w", register, address, noise.ErrIO, err)
	}
	return nil
}

func (b *PeriphBus) Backend() noise.Backend {
	return noise.BackendPeriph
}

func (b *PeriphBus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}
