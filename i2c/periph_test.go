package i2c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"

	noise "github.com/rockts/noise-db-converter"
)

type brokenBus struct{}

func (brokenBus) String() string { return "broken" }
func (brokenBus) SetSpeed(f physic.Frequency) error { return nil }
func (brokenBus) Tx(addr uint16, w, r []byte) error { return errors.New("nack") }

func TestPeriphBus_ReadWord(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x23, W: []byte{0x00}, R: []byte{0x7C, 0x42}},
		},
		DontPanic: true,
	}
	bus := NewPeriphBusFrom(pb)
	v, err := bus.ReadWord(context.Background(), 0x23, 0x00)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x427C), v)
	assert.NoError(t, pb.Close())
}

func TestPeriphBus_WriteWord(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x23, W: []byte{0x10, 0x64, 0x00}},
			{Addr: 0x23, W: []byte{0x20, 0x34, 0x12}},
		},
		DontPanic: true,
	}
	bus := NewPeriphBusFrom(pb)
	ctx := context.Background()
	require.NoError(t, bus.WriteWord(ctx, 0x23, 0x10, 100))
	require.NoError(t, bus.WriteWord(ctx, 0x23, 0x20, 0x1234))
	assert.NoError(t, pb.Close())
}

func TestPeriphBus_Errors(t *testing.T) {
	bus := NewPeriphBusFrom(brokenBus{})
	ctx := context.Background()
	_, err := bus.ReadWord(ctx, 0x23, 0x06)
	assert.ErrorIs(t, err, noise.ErrIO)
	err = bus.WriteWord(ctx, 0x23, 0x10, 1)
	assert.ErrorIs(t, err, noise.ErrIO)
	assert.Equal(t, noise.BackendPeriph, bus.Backend())
	assert.NoError(t, bus.Close())
}
