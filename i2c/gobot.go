package i2c

import (
	"context"
	"errors"
	"fmt"

	goboti2c "gobot.io/x/gobot/v2/drivers/i2c"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	noise "github.com/rockts/noise-db-converter"
)

var _ noise.WordBus = &GobotBus{}

// ByteConn is the part of a gobot i2c.Connection the bus relies on.
type ByteConn interface {
	ReadByteData(reg uint8) (uint8, error)
	WriteByteData(reg uint8, val uint8) error
	Close() error
}

// ConnFunc opens a byte connection to the device at address.
type ConnFunc func(address int) (ByteConn, error)

// GobotBus accesses register words with one SMBus byte transfer per
// register through gobot.
type GobotBus struct {
	open     ConnFunc
	conns    map[byte]ByteConn
	finalize func() error
}

func NewGobotBus(busNumber int, address byte) (*GobotBus, error) {
	npi := nanopi.NewNeoAdaptor()
	err := npi.I2cBusAdaptor.Connect()
	if err != nil {
		return nil, fmt.Errorf("adaptor connect error: %w", err)
	}
	var connector goboti2c.Connector = npi
	return openGobotBus(func(address int) (ByteConn, error) {
		return connector.GetI2cConnection(address, busNumber)
	}, npi.I2cBusAdaptor.Finalize, address)
}

func openGobotBus(open ConnFunc, finalize func() error, address byte) (*GobotBus, error) {
	b := NewGobotBusFrom(open)
	b.finalize = finalize
	err := b.Ping(address)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

func NewGobotBusFrom(open ConnFunc) *GobotBus {
	return &GobotBus{
		open:  open,
		conns: make(map[byte]ByteConn),
	}
}

// Ping reads one byte at register 0 of address. gobot opens the bus device
// on first transfer, so a missing bus only shows up here.
func (b *GobotBus) Ping(address byte) error {
	c, err := b.conn(address)
	if err != nil {
		return fmt.Errorf("%w: %w", noise.ErrIO, err)
	}
	_, err = c.ReadByteData(0x00)
	if err != nil {
		return fmt.Errorf("could not reach device %#02x: %w: %w", address, noise.ErrIO, err)
	}
	return nil
}

func (b *GobotBus) conn(address byte) (ByteConn, error) {
	if c, ok := b.conns[address]; ok {
		return c, nil
	}
	c, err := b.open(int(address))
	if err != nil {
		return nil, fmt.Errorf("could not open i2c connection to %#02x: %w", address, err)
	}
	b.conns[address] = c
	return c, nil
}

func (b *GobotBus) ReadWord(ctx context.Context, address byte, register byte) (uint16, error) {
	c, err := b.conn(address)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", noise.ErrIO, err)
	}
	low, err := c.ReadByteData(register)
	if err != nil {
		return 0, fmt.Errorf("could not read register %#02x from %#02x: %w: %w", register, address, noise.ErrIO, err)
	}
	high, err := c.ReadByteData(register + 1)
	if err != nil {
		return 0, fmt.Errorf("could not read register %#02x from %#02x: %w: %w", register+1, address, noise.ErrIO, err)
	}
	return noise.JoinWord(low, high), nil
}

func (b *GobotBus) WriteWord(ctx context.Context, address byte, register byte, value uint16) error {
	c, err := b.conn(address)
	if err != nil {
		return fmt.Errorf("%w: %w", noise.ErrIO, err)
	}
	low, high := noise.SplitWord(value)
	err = c.WriteByteData(register, low)
	if err != nil {
		return fmt.Errorf("could not write register %#02x to %#02x: %w: %w", register, address, noise.ErrIO, err)
	}
	err = c.WriteByteData(register+1, high)
	if err != nil {
		return fmt.Errorf("could not write register %#02x to %#02x: %w: %w", register+1, address, noise.ErrIO, err)
	}
	return nil
}

func (b *GobotBus) Backend() noise.Backend {
	return noise.BackendGobot
}

func (b *GobotBus) Close() error {
	var errs []error
	for addr, c := range b.conns {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("could not close connection to %#02x: %w", addr, err))
		}
		delete(b.conns, addr)
	}
	if b.finalize != nil {
		if err := b.finalize(); err != nil {
			errs = append(errs, fmt.Errorf("adaptor finalize error: %w", err))
		}
	}
	return errors.Join(errs...)
}
