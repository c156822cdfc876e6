package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Fixed mapping from SELCAL-16 letter to audio frequency.
 *
 * Description:	ICAO SELCAL assigns each of sixteen letters (A-S, excluding
 *		I, N, O) one audio tone frequency. The table is built once
 *		at startup, either from the standard defaults or from a
 *		tone table file (tonetable_file.go), and is immutable
 *		thereafter.
 *
 *------------------------------------------------------------------*/

import "fmt"

// Letter is one element of the sixteen-letter SELCAL-16 alphabet.
type Letter byte

// StandardAlphabet lists the sixteen SELCAL letters in the conventional
// A..S (excluding I, N, O) order.
var StandardAlphabet = []Letter{
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H',
	'J', 'K', 'L', 'M', 'P', 'Q', 'R', 'S',
}

// StandardFrequencies are the ICAO Annex 10 SELCAL tone frequencies (Hz),
// parallel to StandardAlphabet.
var StandardFrequencies = []float64{
	312.6, 346.7, 384.6, 426.6, 473.2, 524.8, 582.1, 645.7,
	716.1, 794.3, 881.0, 977.2, 1083.9, 1202.3, 1333.5, 1479.1,
}

// ToneTable is the immutable Letter -> Frequency mapping. It is constructed
// once at startup and never mutated afterward; readers may share it freely
// across goroutines without synchronization.
type ToneTable struct {
	letters []Letter
	freqs   []float64
	index   map[Letter]int
}

// NewToneTable builds a ToneTable from parallel letter/frequency slices,
// enforcing the invariants from the data model: exactly sixteen entries,
// all frequencies distinct, and all frequencies within (0, nyquist).
func NewToneTable(letters []Letter, freqs []float64, sampleRate float64) (*ToneTable, error) {
	if len(letters) != 16 {
		return nil, fmt.Errorf("tone table must have exactly 16 entries, got %d", len(letters))
	}
	if len(letters) != len(freqs) {
		return nil, fmt.Errorf("tone table letters (%d) and frequencies (%d) length mismatch", len(letters), len(freqs))
	}

	nyquist := sampleRate / 2
	index := make(map[Letter]int, len(letters))
	seenFreq := make(map[float64]bool, len(freqs))

	for i, l := range letters {
		if _, dup := index[l]; dup {
			return nil, fmt.Errorf("duplicate letter %q in tone table", l)
		}
		f := freqs[i]
		if f <= 0 || f >= nyquist {
			return nil, fmt.Errorf("frequency %.2f for letter %q out of range (0, %.2f)", f, l, nyquist)
		}
		if seenFreq[f] {
			return nil, fmt.Errorf("duplicate frequency %.2f in tone table", f)
		}
		seenFreq[f] = true
		index[l] = i
	}

	return &ToneTable{
		letters: append([]Letter(nil), letters...),
		freqs:   append([]float64(nil), freqs...),
		index:   index,
	}, nil
}

// NewStandardToneTable builds the table from the ICAO Annex 10 defaults.
func NewStandardToneTable(sampleRate float64) (*ToneTable, error) {
	return NewToneTable(StandardAlphabet, StandardFrequencies, sampleRate)
}

// Letters returns the table's letters, in table order.
func (t *ToneTable) Letters() []Letter { return t.letters }

// Frequencies returns the table's frequencies, parallel to Letters().
func (t *ToneTable) Frequencies() []float64 { return t.freqs }

// IndexOf returns the table-order index of a letter, or -1 if not present.
func (t *ToneTable) IndexOf(l Letter) int {
	if i, ok := t.index[l]; ok {
		return i
	}
	return -1
}

// FrequencyOf returns the frequency assigned to a letter, or 0 if not present.
func (t *ToneTable) FrequencyOf(l Letter) float64 {
	if i, ok := t.index[l]; ok {
		return t.freqs[i]
	}
	return 0
}

// Len returns the number of letters in the table (always 16 for a
// ToneTable built through NewToneTable).
func (t *ToneTable) Len() int { return len(t.letters) }
