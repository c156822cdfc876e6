package selcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_IsValidSELCAL_acceptsWellFormedCode(t *testing.T) {
	assert.True(t, IsValidSELCAL("ABCD"))
}

func Test_IsValidSELCAL_rejectsWrongLength(t *testing.T) {
	assert.False(t, IsValidSELCAL("ABC"))
	assert.False(t, IsValidSELCAL("ABCDE"))
	assert.False(t, IsValidSELCAL(""))
}

func Test_IsValidSELCAL_rejectsRepeatedFirstPair(t *testing.T) {
	assert.False(t, IsValidSELCAL("AACD"))
}

func Test_IsValidSELCAL_rejectsRepeatedSecondPair(t *testing.T) {
	assert.False(t, IsValidSELCAL("ABCC"))
}

func Test_IsValidSELCAL_rejectsCrossPairRepeat(t *testing.T) {
	assert.False(t, IsValidSELCAL("ABCA"))
}

func Test_IsValidSELCAL_fourDistinctLettersAlwaysValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		letters := rapid.Permutation(StandardAlphabet).Draw(t, "letters")[:4]
		code := string([]byte{byte(letters[0]), byte(letters[1]), byte(letters[2]), byte(letters[3])})
		assert.True(t, IsValidSELCAL(code))
	})
}
