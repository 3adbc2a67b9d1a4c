// Package sound drives the I2C sound level sensor. The driver falls back to
// synthetic samples when no bus or no matching device is present, unless it
// was told to insist on real hardware.
package sound

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	noise "github.com/rockts/noise-db-converter"
	"github.com/rockts/noise-db-converter/i2c"
)

const DefaultAddress = 0x23
const DefaultBus = 1

const (
	RegID        = 0x00
	RegRaw       = 0x06
	RegProcessed = 0x07
	RegStatus    = 0x08
	RegParameter = 0x10
	RegAction    = 0x20
)

// The device reports its identity in either byte order depending on the
// bus library, both are accepted as-is.
const (
	DeviceID        uint16 = 0x427C
	DeviceIDSwapped uint16 = 0x7C42
)

const ActionTrigger uint16 = 0x01

const (
	simulatedMax       = 1024
	simulatedScale     = 100
	simulatedStatusMax = 5
	parameterMin       = 0
	parameterMax       = 100
)

type Config struct {
	Bus       int
	Address   byte
	ForceReal bool
	Backend   noise.WordBus
	Openers   []i2c.Opener
	Rand      *rand.Rand
}

type Option func(*Config)

func WithBus(bus int) Option {
	return func(c *Config) {
		c.Bus = bus
	}
}

func WithAddress(address byte) Option {
	return func(c *Config) {
		c.Address = address
	}
}

// WithForceReal disables the fallback to simulated data.
func WithForceReal(force bool) Option {
	return func(c *Config) {
		c.ForceReal = force
	}
}

// WithBackend uses the given bus instead of probing for one.
func WithBackend(bus noise.WordBus) Option {
	return func(c *Config) {
		c.Backend = bus
	}
}

// WithOpeners replaces the backends tried while probing.
func WithOpeners(openers ...i2c.Opener) Option {
	return func(c *Config) {
		c.Openers = openers
	}
}

// WithRand sets the source of simulated samples.
func WithRand(r *rand.Rand) Option {
	return func(c *Config) {
		c.Rand = r
	}
}

// Device is a handle to the sensor. It is meant to be used by a single
// goroutine at a time.
type Device struct {
	bus         noise.WordBus
	addr        byte
	forceReal   bool
	initialized bool
	simulate    bool
	rnd         *rand.Rand
	lastErr     error
}

// New acquires a bus backend for the device. When none is available the
// device simulates its readings, or New fails if real hardware is forced.
func New(ctx context.Context, opts ...Option) (*Device, error) {
	config := &Config{
		Bus:     DefaultBus,
		Address: DefaultAddress,
	}
	for _, opt := range opts {
		opt(config)
	}
	dev := &Device{
		bus:       config.Backend,
		addr:      config.Address,
		forceReal: config.ForceReal,
		rnd:       config.Rand,
	}
	if dev.bus != nil {
		return dev, nil
	}
	res := i2c.Probe(ctx, config.Bus, config.Address, config.Openers...)
	if res.Found() {
		dev.bus = res.Bus
		slog.Info("sound sensor bus acquired", "bus", config.Bus, "backend", res.Backend)
		return dev, nil
	}
	err := res.Err()
	if config.ForceReal {
		return nil, fmt.Errorf("could not initialize bus %d with simulation disabled: %w", config.Bus, err)
	}
	slog.Warn("could not initialize hardware bus, using simulated data", "bus", config.Bus, "error", err)
	dev.lastErr = err
	dev.simulate = true
	return dev, nil
}

// Begin checks the device identity. It reports false only when real hardware
// is forced and the device could not be confirmed; otherwise a failed check
// switches the device to simulated data.
func (d *Device) Begin(ctx context.Context) bool {
	if d.simulate {
		d.initialized = true
		return true
	}
	var id uint16
	err := noise.ErrNoBackend
	if d.bus != nil {
		id, err = d.bus.ReadWord(ctx, d.addr, RegID)
	}
	if err == nil && id != DeviceID && id != DeviceIDSwapped {
		err = fmt.Errorf("%w: got %#04x, expected %#04x", noise.ErrIdentityMismatch, id, DeviceID)
	}
	d.lastErr = err
	if err == nil {
		d.initialized = true
		return true
	}
	if d.forceReal {
		slog.Error("device initialization failed", "address", d.addr, "error", err)
		return false
	}
	slog.Warn("device initialization failed, using simulated data", "address", d.addr, "error", err)
	d.simulate = true
	d.initialized = true
	return true
}

// reading carries a register value or the reason it could not be obtained.
type reading struct {
	value uint16
	err   error
}

func (r reading) orZero() uint16 {
	if r.err != nil {
		return 0
	}
	return r.value
}

func (d *Device) ensureInitialized(ctx context.Context) error {
	if d.initialized || d.Begin(ctx) {
		return nil
	}
	return fmt.Errorf("%w: %w", noise.ErrNotInitialized, d.lastErr)
}

func (d *Device) read(ctx context.Context, name string, register byte, simulated func() uint16) reading {
	if err := d.ensureInitialized(ctx); err != nil {
		return reading{err: err}
	}
	if d.simulate {
		d.lastErr = nil
		return reading{value: simulated()}
	}
	v, err := d.bus.ReadWord(ctx, d.addr, register)
	d.lastErr = err
	if err != nil {
		slog.Warn("could not read "+name, "register", register, "error", err)
		return reading{err: err}
	}
	return reading{value: v}
}

func (d *Device) write(ctx context.Context, name string, register byte, value uint16) {
	if d.ensureInitialized(ctx) != nil {
		return
	}
	if d.simulate {
		d.lastErr = nil
		return
	}
	err := d.bus.WriteWord(ctx, d.addr, register, value)
	d.lastErr = err
	if err != nil {
		slog.Warn("could not write "+name, "register", register, "value", value, "error", err)
	}
}

func (d *Device) random(n int) uint16 {
	if d.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		d.rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return uint16(d.rnd.IntN(n + 1))
}

func (d *Device) simRaw() uint16 {
	return d.random(simulatedMax)
}

// ReadRaw returns the raw sample, 0 when it cannot be read.
func (d *Device) ReadRaw(ctx context.Context) uint16 {
	return d.read(ctx, "raw data", RegRaw, d.simRaw).orZero()
}

// ReadProcessed returns the processed sample, 0 when it cannot be read.
func (d *Device) ReadProcessed(ctx context.Context) uint16 {
	return d.read(ctx, "processed data", RegProcessed, func() uint16 {
		return d.simRaw() / simulatedScale
	}).orZero()
}

// ReadStatus returns the low byte of the status register, 0 when it cannot
// be read.
func (d *Device) ReadStatus(ctx context.Context) uint8 {
	return uint8(d.read(ctx, "status", RegStatus, func() uint16 {
		return d.random(simulatedStatusMax)
	}).orZero() & 0xFF)
}

// SetParameter writes value clamped to [0, 100].
func (d *Device) SetParameter(ctx context.Context, value int) {
	d.write(ctx, "parameter", RegParameter, uint16(ClampParameter(value)))
}

func (d *Device) PerformAction(ctx context.Context) {
	d.write(ctx, "action", RegAction, ActionTrigger)
}

func ClampParameter(value int) int {
	return min(max(value, parameterMin), parameterMax)
}

func (d *Device) Simulating() bool {
	return d.simulate
}

func (d *Device) Initialized() bool {
	return d.initialized
}

func (d *Device) Address() byte {
	return d.addr
}

func (d *Device) Backend() noise.Backend {
	if d.bus == nil {
		return noise.BackendNone
	}
	return d.bus.Backend()
}

// Err returns the failure swallowed by the last operation touching the bus.
func (d *Device) Err() error {
	return d.lastErr
}

func (d *Device) Close() error {
	if d.bus == nil {
		return nil
	}
	err := d.bus.Close()
	if err != nil {
		return fmt.Errorf("could not close bus: %w", err)
	}
	return nil
}
