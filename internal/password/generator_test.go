// SPDX-License-Identifier: Apache-2.0

package password

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ExactLength(t *testing.T) {
	for _, length := range []int{1, 8, 16, 64} {
		got, err := Generate(DefaultOptions(length))
		require.NoError(t, err)
		assert.Len(t, got, length)
	}
}

func TestGenerate_OnlyEnabledClasses(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		alphabet string
	}{
		{"digits only", Options{Length: 32, Digits: true}, digits},
		{"lowercase only", Options{Length: 32, Lowercase: true}, lowercase},
		{"upper and symbols", Options{Length: 32, Uppercase: true, Symbols: true}, uppercase + symbols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.opts)
			require.NoError(t, err)
			for _, r := range got {
				assert.True(t, strings.ContainsRune(tt.alphabet, r),
					"character %q outside enabled classes", r)
			}
		})
	}
}

func TestGenerate_NoClassEnabled(t *testing.T) {
	_, err := Generate(Options{Length: 8})
	assert.ErrorIs(t, err, ErrNoCharacterClass)
}

func TestGenerate_InvalidLength(t *testing.T) {
	_, err := Generate(DefaultOptions(0))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestGenerate_ExcludeSimilar(t *testing.T) {
	opts := DefaultOptions(256)
	opts.ExcludeSimilar = true

	got, err := Generate(opts)
	require.NoError(t, err)
	for _, r := range similarChars {
		assert.NotContains(t, got, string(r))
	}
}

func TestGenerate_ExcludeRepeated(t *testing.T) {
	opts := Options{Length: 256, Digits: true, ExcludeRepeated: true}

	got, err := Generate(opts)
	require.NoError(t, err)
	for i := 1; i < len(got); i++ {
		assert.NotEqual(t, got[i-1], got[i], "adjacent repeat at %d", i)
	}
}

func TestGenerate_ExcludeSequential(t *testing.T) {
	opts := Options{Length: 256, Digits: true, ExcludeSequential: true}

	got, err := Generate(opts)
	require.NoError(t, err)
	for i := 2; i < len(got); i++ {
		ascending := got[i-2]+1 == got[i-1] && got[i-1]+1 == got[i]
		descending := got[i-2]-1 == got[i-1] && got[i-1]-1 == got[i]
		assert.False(t, ascending || descending, "sequential run ending at %d", i)
	}
}

func TestGenerate_StartWithLetter(t *testing.T) {
	opts := DefaultOptions(16)
	opts.StartWithLetter = true

	for i := 0; i < 32; i++ {
		got, err := Generate(opts)
		require.NoError(t, err)
		first := rune(got[0])
		assert.True(t, unicode.IsLetter(first), "first char %q is not a letter", first)
	}
}

func TestGenerate_StartWithLetterNeedsLetters(t *testing.T) {
	opts := Options{Length: 8, Digits: true, StartWithLetter: true}

	_, err := Generate(opts)
	assert.ErrorIs(t, err, ErrNoLettersEnabled)
}

func TestGenerate_FreshEveryCall(t *testing.T) {
	first, err := Generate(DefaultOptions(24))
	require.NoError(t, err)
	second, err := Generate(DefaultOptions(24))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
