package selcal

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadToneTableFile_emptyPathFallsBackToStandard(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	table, err := LoadToneTableFile("", SampleRate)
	require.NoError(t, err)
	assert.Equal(t, 16, table.Len())
	assert.Equal(t, StandardFrequencies[0], table.FrequencyOf('A'))
}

func Test_LoadToneTableFile_explicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selcal16.yaml")
	doc := "SELCAL16:\n"
	for i, l := range StandardAlphabet {
		doc += "  " + string(rune(l)) + ": " + strconv.FormatFloat(StandardFrequencies[i], 'f', -1, 64) + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	table, err := LoadToneTableFile(path, SampleRate)
	require.NoError(t, err)
	assert.Equal(t, 16, table.Len())
	assert.Equal(t, StandardFrequencies[0], table.FrequencyOf('A'))
}

func Test_LoadToneTableFile_missingFileErrors(t *testing.T) {
	_, err := LoadToneTableFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"), SampleRate)
	assert.Error(t, err)
}

func Test_LoadToneTableFile_rejectsBadLetterKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selcal16.yaml")
	require.NoError(t, os.WriteFile(path, []byte("SELCAL16:\n  1: 312.6\n"), 0o644))

	_, err := LoadToneTableFile(path, SampleRate)
	assert.Error(t, err)
}
