package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Rank tone magnitudes across the filter bank, select a
 *		candidate letter pair, and apply the acceptance gates
 *		(power floor, SNR, balance, spectral flatness, third-tone
 *		rivalry) that reject speech, noise, and partial matches.
 *
 * Description:	Constants are exposed on PairDetector (not hard-coded) so
 *		they can be recalibrated, following the general practice of
 *		naming every tunable rather than burying it in an
 *		expression.
 *
 *------------------------------------------------------------------*/

import (
	"math"
	"sort"
)

// PairDetectorConfig holds the tunable constants governing gate
// acceptance, with the defaults given below.
type PairDetectorConfig struct {
	GoertzelMinPower float64 // absolute power floor per tone
	GoertzelRatio    float64 // tone/noise power ratio
	PairPowerSum     float64 // combined power, loose gate
	PairPowerMin     float64 // combined power, strict gate
	PairImbalanceMax float64 // max power ratio between the two tones
	FlatnessMax      float64 // spectral flatness ceiling
	ThirdToneRivalry float64 // m3 > ThirdToneRivalry*m2 rejects the window
}

// DefaultPairDetectorConfig returns the recommended gate thresholds.
func DefaultPairDetectorConfig() PairDetectorConfig {
	return PairDetectorConfig{
		GoertzelMinPower: 0.00018,
		GoertzelRatio:    1.8,
		PairPowerSum:     0.003,
		PairPowerMin:     0.15,
		PairImbalanceMax: 4.0,
		FlatnessMax:      0.8,
		ThirdToneRivalry: 0.85,
	}
}

// epsilon guards the balance and noise-ratio gates against division by
// zero on all-silent windows.
const epsilon = 1e-12

// Pair is a canonically-ordered two-letter burst content: the two letters
// in ascending order of their tone-table index (equivalently, frequency).
type Pair struct {
	First, Second Letter
}

// String renders the pair as its two-letter code fragment.
func (p Pair) String() string {
	return string([]byte{byte(p.First), byte(p.Second)})
}

// PairDetector evaluates a window of samples against the full gate chain:
// rank, rivalry, power floor, SNR, balance, and flatness.
type PairDetector struct {
	table  *ToneTable
	bank   *FilterBank
	config PairDetectorConfig
}

// NewPairDetector builds a detector over a tone table/filter bank pair.
func NewPairDetector(table *ToneTable, bank *FilterBank, config PairDetectorConfig) *PairDetector {
	return &PairDetector{table: table, bank: bank, config: config}
}

type rankedTone struct {
	index int
	mag   float64
}

// Detect runs the full gate chain against window and returns the canonical
// pair, or ok=false if any gate rejects the window.
func (d *PairDetector) Detect(window []float32) (pair Pair, ok bool) {
	mags := d.bank.Magnitudes(window)

	ranked := make([]rankedTone, len(mags))
	for i, m := range mags {
		ranked[i] = rankedTone{index: i, mag: m}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].mag > ranked[j].mag })

	if len(ranked) < 3 {
		return Pair{}, false
	}
	top1, top2, top3 := ranked[0], ranked[1], ranked[2]

	// Third-tone rivalry gate: reject windows with more than two
	// significant tones (speech has a broad, noisy spectrum).
	if top3.mag > d.config.ThirdToneRivalry*top2.mag {
		return Pair{}, false
	}

	if top1.index == top2.index {
		return Pair{}, false // defensive; cannot happen with distinct magnitudes
	}

	letters := d.table.Letters()
	iA, iB := top1.index, top2.index
	if iB < iA {
		iA, iB = iB, iA
	}
	candidate := Pair{First: letters[iA], Second: letters[iB]}
	if candidate.First == candidate.Second {
		return Pair{}, false
	}

	p1 := d.bank.Power(window, iA)
	p2 := d.bank.Power(window, iB)
	noise := meanSquare(window) + epsilon

	if p1 < d.config.GoertzelMinPower || p2 < d.config.GoertzelMinPower {
		return Pair{}, false
	}
	if math.Min(p1, p2) < noise*d.config.GoertzelRatio {
		return Pair{}, false
	}
	if p1+p2 < d.config.PairPowerSum {
		return Pair{}, false
	}
	if p1+p2 < d.config.PairPowerMin {
		return Pair{}, false
	}
	if math.Max(p1, p2)/math.Max(math.Min(p1, p2), epsilon) > d.config.PairImbalanceMax {
		return Pair{}, false
	}
	if spectralFlatness(mags) > d.config.FlatnessMax {
		return Pair{}, false
	}

	return candidate, true
}

// spectralFlatness computes exp(mean(log mag)) / mean(mag) over the full
// magnitude vector, guarding zero entries so log never sees a non-positive
// argument. Near 1 for noise (flat spectrum), near 0 for pure tones.
func spectralFlatness(mags []float64) float64 {
	if len(mags) == 0 {
		return 0
	}

	var sumLog, sum float64
	for _, m := range mags {
		v := m
		if v <= 0 {
			v = epsilon
		}
		sumLog += math.Log(v)
		sum += v
	}

	geoMean := math.Exp(sumLog / float64(len(mags)))
	arithMean := sum / float64(len(mags))
	if arithMean <= 0 {
		return 0
	}
	return geoMean / arithMean
}
