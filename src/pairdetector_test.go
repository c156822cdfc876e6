package selcal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func synthesizeDualTone(f1, f2 float64, amp1, amp2 float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / SampleRate
		out[i] = float32(amp1*math.Sin(2*math.Pi*f1*t) + amp2*math.Sin(2*math.Pi*f2*t))
	}
	return out
}

func newTestDetector(t *testing.T) (*ToneTable, *PairDetector) {
	table, err := NewStandardToneTable(SampleRate)
	require.NoError(t, err)
	bank := NewFilterBank(table, SampleRate)
	detector := NewPairDetector(table, bank, DefaultPairDetectorConfig())
	return table, detector
}

func Test_PairDetector_detectsACleanDualTone(t *testing.T) {
	table, detector := newTestDetector(t)

	window := synthesizeDualTone(StandardFrequencies[0], StandardFrequencies[5], 0.3, 0.3, WindowSamples())
	pair, ok := detector.Detect(window)
	require.True(t, ok)

	assert.Equal(t, table.Letters()[0], pair.First)
	assert.Equal(t, table.Letters()[5], pair.Second)
}

func Test_PairDetector_rejectsSilence(t *testing.T) {
	_, detector := newTestDetector(t)

	_, ok := detector.Detect(make([]float32, WindowSamples()))
	assert.False(t, ok)
}

func Test_PairDetector_rejectsSingleTone(t *testing.T) {
	_, detector := newTestDetector(t)

	window := synthesizeTone(StandardFrequencies[2], WindowSamples())
	_, ok := detector.Detect(window)
	assert.False(t, ok)
}

func Test_PairDetector_rejectsWhiteNoise(t *testing.T) {
	_, detector := newTestDetector(t)

	rng := rand.New(rand.NewSource(1))
	window := make([]float32, WindowSamples())
	for i := range window {
		window[i] = float32(rng.Float64()*2 - 1)
	}

	_, ok := detector.Detect(window)
	assert.False(t, ok)
}

func Test_PairDetector_rejectsThirdToneRivalry(t *testing.T) {
	_, detector := newTestDetector(t)

	// The estimator uses the nearest DFT bin without windowing, so a tone's
	// magnitude depends on its offset from that bin. Letters A and C both sit
	// 0.4 Hz off their bins, which keeps the third tone's magnitude close to
	// the second's.
	n := WindowSamples()
	window := make([]float32, n)
	for i := range window {
		time := float64(i) / SampleRate
		window[i] = float32(
			0.3*math.Sin(2*math.Pi*StandardFrequencies[0]*time) +
				0.3*math.Sin(2*math.Pi*StandardFrequencies[5]*time) +
				0.29*math.Sin(2*math.Pi*StandardFrequencies[2]*time),
		)
	}

	_, ok := detector.Detect(window)
	assert.False(t, ok)
}

func Test_PairDetector_acceptsBalancedPairsAcrossAmplitude(t *testing.T) {
	table, detector := newTestDetector(t)

	rapid.Check(t, func(t *rapid.T) {
		i := rapid.IntRange(0, 15).Draw(t, "i")
		offset := rapid.IntRange(1, 15).Draw(t, "offset")
		j := (i + offset) % 16
		amp := rapid.Float64Range(0.1, 0.45).Draw(t, "amp")

		window := synthesizeDualTone(StandardFrequencies[i], StandardFrequencies[j], amp, amp, WindowSamples())
		pair, ok := detector.Detect(window)
		require.True(t, ok)

		lo, hi := i, j
		if hi < lo {
			lo, hi = hi, lo
		}
		assert.Equal(t, table.Letters()[lo], pair.First)
		assert.Equal(t, table.Letters()[hi], pair.Second)
	})
}
