package util

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("point of interest not found")
	err := WrapErrorf(orig, ErrNotFound, "start point %d not found", 7)

	assert.Equal(t, "start point 7 not found: point of interest not found", err.Error())
	assert.ErrorIs(t, err, orig)

	var ierr *Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, ErrNotFound, ierr.Code())

	bare := WrapErrorf(nil, ErrBadParamInput, "bad input")
	assert.Equal(t, "bad input", bare.Error())
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want float64
	}{
		{"empty", nil, 0},
		{"odd", []float64{90, 30, 60}, 60},
		{"even", []float64{45, 120, 60, 90}, 75},
		{"single", []float64{42}, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]float64(nil), tt.vals...)
			assert.Equal(t, tt.want, Median(in))
			assert.Equal(t, len(tt.vals), len(in))
			for i := range in {
				assert.Equal(t, tt.vals[i], in[i], "input reordered")
			}
		})
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

func TestLinspace(t *testing.T) {
	got := Linspace(1, 5, 5)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, got)

	twenty := Linspace(1, 5, 20)
	require.Len(t, twenty, 20)
	assert.Equal(t, 1.0, twenty[0])
	assert.Equal(t, 5.0, twenty[19])
	assert.InDelta(t, 4.0/19, twenty[1]-twenty[0], 1e-12)

	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
	assert.Empty(t, Linspace(3, 9, 0))
}

func TestAllClose(t *testing.T) {
	assert.True(t, AllClose(1.0, 1.0+1e-9))
	assert.True(t, AllClose(1000.0, 1000.005))
	assert.False(t, AllClose(1000.0, 1000.1))
	assert.False(t, AllClose(0, 1e-7))
	assert.True(t, AllClose(math.Inf(1), math.Inf(1)))
	assert.False(t, AllClose(math.Inf(1), 1e300))
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 3.14, RoundFloat(3.14159, 2))
	assert.Equal(t, 25.0, RoundFloat(24.99996, 4))
}
