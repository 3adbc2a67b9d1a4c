package i2c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	noise "github.com/rockts/noise-db-converter"
)

type write struct {
	reg uint8
	val uint8
}

type fakeConn struct {
	regs    map[uint8]uint8
	writes  []write
	readErr error
	closed  bool
}

func (c *fakeConn) ReadByteData(reg uint8) (uint8, error) {
	if c.readErr != nil {
		return 0, c.readErr
	}
	return c.regs[reg], nil
}

func (c *fakeConn) WriteByteData(reg uint8, val uint8) error {
	c.writes = append(c.writes, write{reg, val})
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestGobotBus_ReadWord(t *testing.T) {
	conn := &fakeConn{regs: map[uint8]uint8{0x06: 0xCD, 0x07: 0x03}}
	var opened []int
	bus := NewGobotBusFrom(func(address int) (ByteConn, error) {
		opened = append(opened, address)
		return conn, nil
	})
	ctx := context.Background()
	v, err := bus.ReadWord(ctx, 0x23, 0x06)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x03CD), v)
	_, err = bus.ReadWord(ctx, 0x23, 0x06)
	require.NoError(t, err)
	assert.Equal(t, []int{0x23}, opened, "connection should be opened once per address")
}

func TestGobotBus_WriteWordOrder(t *testing.T) {
	conn := &fakeConn{}
	bus := NewGobotBusFrom(func(address int) (ByteConn, error) { return conn, nil })
	require.NoError(t, bus.WriteWord(context.Background(), 0x23, 0x10, 0xAB64))
	assert.Equal(t, []write{{0x10, 0x64}, {0x11, 0xAB}}, conn.writes)
}

func TestGobotBus_Errors(t *testing.T) {
	ctx := context.Background()
	bus := NewGobotBusFrom(func(address int) (ByteConn, error) { return nil, errors.New("no such file") })
	_, err := bus.ReadWord(ctx, 0x23, 0x00)
	assert.ErrorIs(t, err, noise.ErrIO)
	assert.ErrorIs(t, bus.WriteWord(ctx, 0x23, 0x10, 1), noise.ErrIO)

	conn := &fakeConn{readErr: errors.New("remote i/o error")}
	bus = NewGobotBusFrom(func(address int) (ByteConn, error) { return conn, nil })
	_, err = bus.ReadWord(ctx, 0x23, 0x00)
	assert.ErrorIs(t, err, noise.ErrIO)
	assert.NoError(t, bus.Close())
	assert.True(t, conn.closed)
	assert.Equal(t, noise.BackendGobot, bus.Backend())
}

func TestOpenGobotBus_FirstTransferFails(t *testing.T) {
	conn := &fakeConn{readErr: errors.New("open /dev/i2c-1: no such file or directory")}
	finalized := false
	bus, err := openGobotBus(func(address int) (ByteConn, error) { return conn, nil }, func() error {
		finalized = true
		return nil
	}, 0x23)
	assert.Nil(t, bus)
	assert.ErrorIs(t, err, noise.ErrIO)
	assert.True(t, conn.closed)
	assert.True(t, finalized)
}

func TestOpenGobotBus_Reachable(t *testing.T) {
	conn := &fakeConn{regs: map[uint8]uint8{0x00: 0x7C}}
	bus, err := openGobotBus(func(address int) (ByteConn, error) { return conn, nil }, nil, 0x23)
	require.NoError(t, err)
	assert.False(t, conn.closed)
	assert.NoError(t, bus.Close())
}

func TestGobotOpener_NoBus(t *testing.T) {
	res := Probe(context.Background(), 1, 0x23, func(ctx context.Context, busNumber int, address byte) (noise.WordBus, error) {
		bus, err := openGobotBus(func(address int) (ByteConn, error) {
			return &fakeConn{readErr: errors.New("no such file or directory")}, nil
		}, nil, address)
		if err != nil {
			return nil, err
		}
		return bus, nil
	})
	assert.False(t, res.Found())
	assert.ErrorIs(t, res.Err(), noise.ErrNoBackend)
}
