// Package password generates candidate passwords and scores their strength.
// It is independent of the vault: the add/edit flows consume it, nothing in
// it touches stored credentials.
package password

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()-_=+[]{}|;:,.<>?/"

	// similarChars are glyphs that are easy to confuse when a password is
	// read off a screen or typed from paper.
	similarChars = "Il1Lo0O"
)

var (
	ErrInvalidLength     = errors.New("password length must be positive")
	ErrNoCharacterClass  = errors.New("at least one character class must be enabled")
	ErrNoLettersEnabled  = errors.New("start-with-letter requires an enabled letter class")
	ErrAlphabetTooSmall  = errors.New("character set too small for the requested constraints")
)

// Options controls password generation.
type Options struct {
	Length int

	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool

	// ExcludeSimilar removes I, l, 1, L, o, 0 and O from the alphabet.
	ExcludeSimilar bool
	// ExcludeSequential rejects runs of three characters with consecutive
	// codepoints, ascending or descending ("abc", "321").
	ExcludeSequential bool
	// ExcludeRepeated rejects two identical adjacent characters.
	ExcludeRepeated bool
	// StartWithLetter forces the first character to be an ASCII letter and
	// keeps it in place: the shuffle step is skipped so the placement
	// survives.
	StartWithLetter bool
}

// DefaultOptions returns the generator settings the UI starts from: all
// character classes enabled, no exclusions.
func DefaultOptions(length int) Options {
	return Options{
		Length:    length,
		Lowercase: true,
		Uppercase: true,
		Digits:    true,
		Symbols:   true,
	}
}

// Generate produces a random password of exactly opts.Length characters
// drawn from the enabled classes, using crypto/rand throughout.
func Generate(opts Options) (string, error) {
	if opts.Length <= 0 {
		return "", ErrInvalidLength
	}

	var alphabet string
	if opts.Lowercase {
		alphabet += lowercase
	}
	if opts.Uppercase {
		alphabet += uppercase
	}
	if opts.Digits {
		alphabet += digits
	}
	if opts.Symbols {
		alphabet += symbols
	}
	if alphabet == "" {
		return "", ErrNoCharacterClass
	}

	if opts.ExcludeSimilar {
		alphabet = strings.Map(func(r rune) rune {
			if strings.ContainsRune(similarChars, r) {
				return -1
			}
			return r
		}, alphabet)
	}

	if opts.ExcludeRepeated && len(alphabet) < 2 {
		return "", ErrAlphabetTooSmall
	}

	var out []byte

	if opts.StartWithLetter {
		letters := ""
		for _, r := range lowercase + uppercase {
			if strings.ContainsRune(alphabet, r) {
				letters += string(r)
			}
		}
		if letters == "" {
			return "", ErrNoLettersEnabled
		}
		first, err := randomChar(letters)
		if err != nil {
			return "", err
		}
		out = append(out, first)
	}

	for len(out) < opts.Length {
		next, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}

		if opts.ExcludeRepeated && len(out) > 0 && out[len(out)-1] == next {
			continue
		}
		if opts.ExcludeSequential && len(out) >= 2 {
			a, b := out[len(out)-2], out[len(out)-1]
			ascending := a+1 == b && b+1 == next
			descending := a-1 == b && b-1 == next
			if ascending || descending {
				continue
			}
		}

		out = append(out, next)
	}

	// With a pinned first letter the result is used as built; otherwise
	// shuffle so character order carries no generation-time bias.
	if !opts.StartWithLetter {
		if err := shuffle(out); err != nil {
			return "", err
		}
	}

	return string(out), nil
}

func randomChar(alphabet string) (byte, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[i.Int64()], nil
}

func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		b[i], b[j.Int64()] = b[j.Int64()], b[i]
	}
	return nil
}
