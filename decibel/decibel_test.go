package decibel

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// adcFor returns the sample producing the given voltage.
func adcFor(voltage float64) float64 {
	return voltage / VRef * ADCMax
}

func TestToDecibel(t *testing.T) {
	tests := []struct {
		given    any
		expected float64
	}{
		{0, 20 * math.Log10(0.001/0.00631)},
		{4095, 20 * math.Log10(3.301/0.00631)},
		{2048, 20 * math.Log10((2048.0/4095*3.3+0.001)/0.00631)},
		{"1000", 20 * math.Log10((1000.0/4095*3.3+0.001)/0.00631)},
		{uint16(3000), 20 * math.Log10((3000.0/4095*3.3+0.001)/0.00631)},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.given), func(t *testing.T) {
			assert.InDelta(t, test.expected, ToDecibel(test.given), 1e-9)
		})
	}
	assert.InDelta(t, -16.0006, ToDecibel(0), 0.0001)
}

func TestToDecibel_Monotonic(t *testing.T) {
	prev := ToDecibel(0)
	for adc := 1; adc <= 4095; adc++ {
		db := ToDecibel(adc)
		assert.Greater(t, db, prev)
		prev = db
	}
}

func TestToDBA(t *testing.T) {
	assert.InDelta(t, 30.0, ToDBA(adcFor(0.6)), 1e-9)
	assert.InDelta(t, 130.0, ToDBA(adcFor(2.6)), 1e-9)
	assert.InDelta(t, 75.0, ToDBA(adcFor(1.5)), 1e-9)
	assert.Equal(t, MinDBA, ToDBA(0))
	assert.Equal(t, MaxDBA, ToDBA(4095))
	assert.InDelta(t, 50.0, ToDBA(json.Number("1241")), 0.1)
}

func TestToDBA_Range(t *testing.T) {
	for adc := 0; adc <= 4095; adc++ {
		dba := ToDBA(adc)
		assert.GreaterOrEqual(t, dba, MinDBA)
		assert.LessOrEqual(t, dba, MaxDBA)
	}
}

func TestConverters_NonNumeric(t *testing.T) {
	inputs := []any{nil, "loud", "", struct{}{}, []int{1}, math.NaN(), "NaN"}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%#v", in), func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, 0.0, ToDecibel(in))
				assert.Equal(t, 0.0, ToDBA(in))
			})
		})
	}
}

func TestToDecibel_NegativeSample(t *testing.T) {
	assert.Equal(t, 0.0, ToDecibel(-100))
	// below zero the A-weighted estimate still clamps
	assert.Equal(t, MinDBA, ToDBA(-100))
}

func TestVoltage(t *testing.T) {
	assert.Equal(t, 0.0, Voltage(0))
	assert.InDelta(t, 3.3, Voltage(4095), 1e-12)
}

func TestToDecibel_PaddedString(t *testing.T) {
	assert.InDelta(t, ToDecibel(1000), ToDecibel(" 1000\n"), 1e-12)
}
