package selcal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Emitter_rejectsInvalidCode(t *testing.T) {
	e := NewEmitter(DefaultEmitterConfig(filepath.Join(t.TempDir(), "selcal.log")), nil, NopLogger{})
	assert.False(t, e.Emit("AAB", time.Now()))
}

func Test_Emitter_locksOutDuplicateWithinWindow(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "selcal.log")
	e := NewEmitter(DefaultEmitterConfig(logPath), nil, NopLogger{})
	base := time.Unix(0, 0)

	assert.True(t, e.Emit("ABCD", base))
	assert.False(t, e.Emit("ABCD", base.Add(2*time.Second)))
	assert.True(t, e.Emit("ABCD", base.Add(5*time.Second)))
}

func Test_Emitter_differentCodeIsNotLockedOut(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "selcal.log")
	e := NewEmitter(DefaultEmitterConfig(logPath), nil, NopLogger{})
	base := time.Unix(0, 0)

	assert.True(t, e.Emit("ABCD", base))
	assert.True(t, e.Emit("EFGH", base.Add(time.Second)))
}

func Test_Emitter_prependsNewestLineFirst(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "selcal.log")
	e := NewEmitter(DefaultEmitterConfig(logPath), nil, NopLogger{})
	base := time.Unix(0, 0)

	require.True(t, e.Emit("ABCD", base))
	require.True(t, e.Emit("EFGH", base.Add(10*time.Second)))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := splitNonEmptyLines(string(data))
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "EFGH")
	assert.Contains(t, lines[1], "ABCD")
}

func Test_Emitter_includesDictionaryParenthetical(t *testing.T) {
	dict, err := parseDictionary(strings.NewReader("ABCD\tG-ABCD\tA320\tEasyJet\n"), nil)
	require.NoError(t, err)

	logPath := filepath.Join(t.TempDir(), "selcal.log")
	e := NewEmitter(DefaultEmitterConfig(logPath), dict, NopLogger{})

	line := e.format("ABCD", time.Unix(0, 0))
	assert.Contains(t, line, "G-ABCD A320 EasyJet")
}

func splitNonEmptyLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
