package i2c

import (
	"context"
	"fmt"
	"log/slog"

	noise "github.com/rockts/noise-db-converter"
)

// Opener tries to acquire one backend for the given bus and device address.
type Opener func(ctx context.Context, busNumber int, address byte) (noise.WordBus, error)

// ProbeResult is the outcome of a backend probe. Bus is nil when no opener
// succeeded; Errs collects the failure of every opener that was tried.
type ProbeResult struct {
	Bus     noise.WordBus
	Backend noise.Backend
	Errs    []error
}

func (r ProbeResult) Found() bool {
	return r.Bus != nil
}

// Err summarizes why no backend was found, or returns nil.
func (r ProbeResult) Err() error {
	if r.Found() {
		return nil
	}
	return fmt.Errorf("%w: %v", noise.ErrNoBackend, r.Errs)
}

func OpenPeriph(ctx context.Context, busNumber int, address byte) (noise.WordBus, error) {
	bus, err := NewPeriphBus(busNumber)
	if err != nil {
		return nil, err
	}
	return bus, nil
}

func OpenGobot(ctx context.Context, busNumber int, address byte) (noise.WordBus, error) {
	bus, err := NewGobotBus(busNumber, address)
	if err != nil {
		return nil, err
	}
	return bus, nil
}

// DefaultOpeners lists the supported backends in order of preference.
func DefaultOpeners() []Opener {
	return []Opener{OpenPeriph, OpenGobot}
}

// Probe returns the first backend that can be opened. Backends are
// mutually exclusive: once one is acquired the rest are not tried.
func Probe(ctx context.Context, busNumber int, address byte, openers ...Opener) ProbeResult {
	if len(openers) == 0 {
		openers = DefaultOpeners()
	}
	var res ProbeResult
	for _, open := range openers {
		bus, err := open(ctx, busNumber, address)
		if err != nil {
			slog.Debug("i2c backend unavailable", "bus", busNumber, "error", err)
			res.Errs = append(res.Errs, err)
			continue
		}
		res.Bus = bus
		res.Backend = bus.Backend()
		slog.Debug("i2c backend selected", "bus", busNumber, "backend", res.Backend)
		return res
	}
	return res
}
