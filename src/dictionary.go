package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Load the registry dictionary: a lookup from SELCAL code to
 *		a human-readable "(registration type operator)" string.
 *
 * Description:	Tab-separated text, one record per line, at least four
 *		fields: code, registration, aircraft type, operator.
 *		Malformed lines are skipped with a logged warning, never
 *		aborting the load. Duplicate codes: last one wins.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DictionaryEntry is one registry record.
type DictionaryEntry struct {
	Code         string
	Registration string
	AircraftType string
	Operator     string
}

// String formats the entry as it appears inside the emitted log line's
// parenthetical: "registration type operator", without the parentheses.
func (e DictionaryEntry) String() string {
	return fmt.Sprintf("%s %s %s", e.Registration, e.AircraftType, e.Operator)
}

// Dictionary is an immutable code -> DictionaryEntry lookup, built once at
// startup.
type Dictionary struct {
	entries map[string]DictionaryEntry
}

// Lookup returns the entry for a code and whether it was found.
func (d *Dictionary) Lookup(code string) (DictionaryEntry, bool) {
	e, ok := d.entries[code]
	return e, ok
}

// Len returns the number of loaded entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// LoadDictionaryFile parses a tab-separated registry file. Lines with
// fewer than four fields are skipped; onSkip, if non-nil, is called once
// per skipped line with an opaque diagnostic (matching its "per-line
// skip, no abort" error disposition).
func LoadDictionaryFile(path string, onSkip func(lineNo int, reason string)) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file %s: %w", path, err)
	}
	defer f.Close()

	return parseDictionary(f, onSkip)
}

func parseDictionary(r io.Reader, onSkip func(lineNo int, reason string)) (*Dictionary, error) {
	entries := make(map[string]DictionaryEntry)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			if onSkip != nil {
				onSkip(lineNo, fmt.Sprintf("expected at least 4 tab-separated fields, got %d", len(fields)))
			}
			continue
		}

		code := strings.TrimSpace(fields[0])
		if code == "" {
			if onSkip != nil {
				onSkip(lineNo, "empty code field")
			}
			continue
		}

		entries[code] = DictionaryEntry{
			Code:         code,
			Registration: strings.TrimSpace(fields[1]),
			AircraftType: strings.TrimSpace(fields[2]),
			Operator:     strings.TrimSpace(fields[3]),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dictionary: %w", err)
	}

	return &Dictionary{entries: entries}, nil
}
