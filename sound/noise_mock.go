package sound

import (
	"context"
)

// SampleBehaviorFunc defines the function signature for sound sensor behavior.
// It returns a raw sample or an error.
type SampleBehaviorFunc func(ctx context.Context) (uint16, error)

// MockNoiseSensor is a mock sound level sensor that uses a behavior function
// to produce raw samples without requiring any hardware.
type MockNoiseSensor struct {
	behavior SampleBehaviorFunc
}

// NewMockNoiseSensor creates a new mock sensor with the given behavior function.
//
// Example usage:
//
//	sensor := NewMockNoiseSensor(func(ctx context.Context) (uint16, error) { return 2048, nil })
func NewMockNoiseSensor(behavior SampleBehaviorFunc) *MockNoiseSensor {
	return &MockNoiseSensor{behavior: behavior}
}

// ReadRaw returns the sample produced by the behavior function.
func (m *MockNoiseSensor) ReadRaw(ctx context.Context) (uint16, error) {
	return m.behavior(ctx)
}

// SampleReader is implemented by MockNoiseSensor and by Device through
// DeviceReader.
type SampleReader interface {
	ReadRaw(ctx context.Context) (uint16, error)
}

// DeviceReader adapts a Device to SampleReader, reporting the failure the
// device swallowed while reading.
type DeviceReader struct {
	Device *Device
}

func (r DeviceReader) ReadRaw(ctx context.Context) (uint16, error) {
	v := r.Device.ReadRaw(ctx)
	return v, r.Device.Err()
}
