package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Load the SELCAL tone table from a YAML file at startup.
 *
 * Description:	The file is keyed "SELCAL16" with an object whose keys are
 *		single uppercase letters and whose values are frequencies
 *		in Hz, e.g.:
 *
 *			SELCAL16:
 *			  A: 312.6
 *			  B: 346.7
 *			  ...
 *
 *		A fixed list of search locations is tried in order when no
 *		explicit path is given; the first file found wins. Read once
 *		at startup; never re-read while running.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// toneTableSearchLocations lists, in priority order: current directory, a
// data/ subdirectory, then system-wide locations.
var toneTableSearchLocations = []string{
	"selcal16.yaml",
	"data/selcal16.yaml",
	"/usr/local/share/selcalrx/selcal16.yaml",
	"/usr/share/selcalrx/selcal16.yaml",
}

type toneTableDocument struct {
	SELCAL16 map[string]float64 `yaml:"SELCAL16"`
}

// LoadToneTableFile reads a tone table YAML file. If path is empty, the
// search locations above are tried in order and the first one found is
// used; if none exist, the standard ICAO defaults are used instead.
func LoadToneTableFile(path string, sampleRate float64) (*ToneTable, error) {
	if path == "" {
		for _, candidate := range toneTableSearchLocations {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path == "" {
		return NewStandardToneTable(sampleRate)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tone table file %s: %w", path, err)
	}

	var doc toneTableDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tone table file %s: %w", path, err)
	}

	if len(doc.SELCAL16) == 0 {
		return nil, fmt.Errorf("tone table file %s has no SELCAL16 entries", path)
	}

	type entry struct {
		letter Letter
		freq   float64
	}
	entries := make([]entry, 0, len(doc.SELCAL16))
	for k, v := range doc.SELCAL16 {
		if len(k) != 1 || k[0] < 'A' || k[0] > 'Z' {
			return nil, fmt.Errorf("tone table file %s: invalid letter key %q", path, k)
		}
		entries = append(entries, entry{letter: Letter(k[0]), freq: v})
	}

	// Map iteration order is nondeterministic; table index order must equal
	// frequency-ascending order so the canonical pair ordering in
	// pairdetector.go is deterministic and matches the standard table's
	// by-frequency convention.
	sort.Slice(entries, func(i, j int) bool { return entries[i].freq < entries[j].freq })

	letters := make([]Letter, len(entries))
	freqs := make([]float64, len(entries))
	for i, e := range entries {
		letters[i] = e.letter
		freqs[i] = e.freq
	}

	table, err := NewToneTable(letters, freqs, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("tone table file %s: %w", path, err)
	}
	return table, nil
}
