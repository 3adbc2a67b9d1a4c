// Package decibel converts 12-bit ADC samples of the sound sensor into sound
// level estimates.
package decibel

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cast"
)

const (
	ADCMax    = 4095.0
	VRef      = 3.3
	offset    = 0.001
	reference = 0.00631
	dBAPerV   = 50.0
	MinDBA    = 30.0
	MaxDBA    = 130.0
)

// Voltage returns the sensor output voltage for an ADC sample.
func Voltage(adc float64) float64 {
	return adc / ADCMax * VRef
}

func toFloat(v any) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("no value")
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0, fmt.Errorf("empty value")
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	return f, nil
}

// ToDecibel converts an ADC sample to dB as 20*log10((V+0.001)/0.00631).
// It returns 0 for input that is not numeric or outside the logarithm's
// domain.
func ToDecibel(v any) float64 {
	adc, err := toFloat(v)
	if err != nil {
		slog.Warn("could not convert value to decibel", "value", v, "error", err)
		return 0
	}
	slog.Debug("converting adc value", "adc", adc)
	voltage := Voltage(adc)
	slog.Debug("computed voltage", "voltage", fmt.Sprintf("%.6fV", voltage))
	if voltage+offset <= 0 {
		slog.Warn("could not convert value to decibel", "value", v, "error", "math domain error")
		return 0
	}
	db := 20.0 * math.Log10((voltage+offset)/reference)
	slog.Debug("converted decibel value", "db", fmt.Sprintf("%.2fdB", db))
	return db
}

// ToDBA converts an ADC sample to an A-weighted estimate, 50 dBA per volt
// clamped to [30, 130]. It returns 0 for input that is not numeric.
func ToDBA(v any) float64 {
	adc, err := toFloat(v)
	if err != nil {
		slog.Warn("could not convert value to dBA", "value", v, "error", err)
		return 0
	}
	return min(max(Voltage(adc)*dBAPerV, MinDBA), MaxDBA)
}
