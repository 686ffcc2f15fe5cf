package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected float64
	}{
		{"Numeric string", "1200.50", 1200.5},
		{"Padded string", " 85 ", 85},
		{"Bytes from driver", []byte("450.00"), 450},
		{"Float", 99.999, 99.999},
		{"Sub-cent string", "12.345", 12.345},
		{"Int64", int64(300), 300},
		{"Int", 12, 12},
		{"Nil", nil, 0},
		{"Empty string", "", 0},
		{"Garbage", "call for price", 0},
		{"Unsupported type", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseRate(tt.in))
		})
	}
}

func TestRateString(t *testing.T) {
	assert.Equal(t, "1200.00", RateString(1200))
	assert.Equal(t, "0.00", RateString(0))
	assert.Equal(t, "1200.50", RateString(1200.5))
	assert.Equal(t, "12.345", RateString(12.345))
}

func TestRateString_ParsesBackUnchanged(t *testing.T) {
	for _, rate := range []float64{0, 0.1, 12.345, 99.999, 1200.5, 1234567.891, 0.0001} {
		assert.Equal(t, rate, ParseRate(RateString(rate)), "rate %v", rate)
	}
}

func TestFormatMonthlyRate(t *testing.T) {
	assert.Equal(t, "$1,200.00/mo", FormatMonthlyRate(1200))
	assert.Equal(t, "$950.50/mo", FormatMonthlyRate(950.5))
	assert.Equal(t, "$1,234,567.00/mo", FormatMonthlyRate(1234567))
	assert.Equal(t, "", FormatMonthlyRate(0))
}
