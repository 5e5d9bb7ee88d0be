package vitaverb

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReverbRequiresInit(t *testing.T) {
	r := NewReverb()
	err := r.TryProcess(make([]float32, 8), make([]float32, 8), DefaultParams())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestTryInitRejectsOutOfRangeSampleRate(t *testing.T) {
	r := NewReverb()
	assert.ErrorIs(t, r.TryInit(1000), ErrInvalidSampleRate)
	assert.ErrorIs(t, r.TryInit(500000), ErrInvalidSampleRate)
}

func TestTryProcessRejectsMismatchedChannelLength(t *testing.T) {
	r := NewReverb()
	require.NoError(t, r.TryInit(48000))

	err := r.TryProcess(make([]float32, 8), make([]float32, 4), DefaultParams())
	assert.ErrorIs(t, err, ErrMismatchedChannelLength)
}

func TestProcessPanicsBeforeInit(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		require.True(t, ok, "recovered value should be an error")
		assert.True(t, errors.Is(err, ErrNotInitialized))
	}()
	NewReverb().Process(make([]float32, 8), make([]float32, 8), DefaultParams())
}

func TestProcessRunsEndToEndAfterInit(t *testing.T) {
	r := NewReverb()
	require.NoError(t, r.TryInit(48000))

	left := make([]float32, 2048)
	right := make([]float32, 2048)
	for i := range left {
		left[i] = float32(math.Sin(float64(i) * 0.1))
		right[i] = left[i]
	}

	r.Process(left, right, DefaultParams())

	for i := range left {
		if math.IsNaN(float64(left[i])) || math.IsInf(float64(left[i]), 0) {
			t.Fatalf("left[%d] = %v", i, left[i])
		}
	}
}

func TestResetBeforeInitIsNoop(t *testing.T) {
	r := NewReverb()
	r.Reset() // must not panic
}

func TestTailSamplesBeforeInitIsZero(t *testing.T) {
	r := NewReverb()
	assert.Equal(t, uint32(0), r.TailSamples(1.0))
}
