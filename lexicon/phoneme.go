package lexicon

import (
	"fmt"
	"regexp"
	"strings"
)

// multiPhonemes are the two-letter ARPAbet symbols, mapped position-wise onto
// compactSymbols so each phoneme becomes one character.
var (
	multiPhonemes = []string{
		"AA", "AE", "AH", "AO", "AW", "AY", "CH", "DH", "EH", "ER",
		"EY", "HH", "IH", "IY", "JH", "NG", "OW", "OY", "SH",
		"TH", "UH", "UW", "ZH",
	}
	compactSymbols = []byte("abcdefghijklmnopqrstuvw")

	compactTable = func() map[string]byte {
		m := make(map[string]byte, len(multiPhonemes))
		for i, p := range multiPhonemes {
			m[p] = compactSymbols[i]
		}
		return m
	}()

	reStress = regexp.MustCompile(`\d+`)
)

// Vowels and continuants by ARPAbet symbol (stress removed).
var (
	Vowels = NewPhoneClass("AA", "AE", "AH", "AO", "AW", "AY", "EH", "ER", "EY",
		"IH", "IY", "OW", "OY", "UH", "UW")
	Continuants = NewPhoneClass("DH", "F", "L", "M", "N", "NG", "R", "S", "SH",
		"TH", "V", "Z", "ZH")
)

// PhoneClass is a fixed set of phoneme symbols.
type PhoneClass map[string]struct{}

func NewPhoneClass(symbols ...string) PhoneClass {
	c := make(PhoneClass, len(symbols))
	for _, s := range symbols {
		c[s] = struct{}{}
	}
	return c
}

func (c PhoneClass) Has(symbol string) bool {
	_, ok := c[symbol]
	return ok
}

// StripStress removes numeric stress markers ("OW1" -> "OW").
func StripStress(phoneme string) string {
	return reStress.ReplaceAllString(phoneme, "")
}

// Compact converts an ARPAbet phoneme sequence into a string with one
// character per phoneme. Single-letter symbols are kept as they are; an
// unknown multi-letter symbol is an error.
func Compact(phonemes []string) (string, error) {
	var b strings.Builder
	b.Grow(len(phonemes))
	for _, p := range phonemes {
		p = strings.ToUpper(StripStress(strings.TrimSpace(p)))
		switch {
		case p == "":
			continue
		case len(p) == 1:
			b.WriteString(p)
		default:
			c, ok := compactTable[p]
			if !ok {
				return "", fmt.Errorf("no compact symbol for phoneme %q", p)
			}
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// IsCompactSymbol reports whether c can appear in a compact representation.
func IsCompactSymbol(c byte) bool {
	return (c >= 'a' && c <= 'w') || (c >= 'A' && c <= 'Z')
}
