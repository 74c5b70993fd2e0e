package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PhoneticDict maps words to their compact phonetic representation.
type PhoneticDict struct {
	entries map[string]string
}

func NewPhoneticDict() *PhoneticDict {
	return &PhoneticDict{entries: make(map[string]string)}
}

// Add stores the compact form of phonemes for word. The first pronunciation
// added for a word wins.
func (d *PhoneticDict) Add(word string, phonemes []string) error {
	word = strings.ToLower(word)
	if _, ok := d.entries[word]; ok {
		return nil
	}
	c, err := Compact(phonemes)
	if err != nil {
		return fmt.Errorf("%s: %w", word, err)
	}
	if c == "" {
		return fmt.Errorf("%s: empty pronunciation", word)
	}
	d.entries[word] = c
	return nil
}

func (d *PhoneticDict) Lookup(word string) (string, bool) {
	c, ok := d.entries[word]
	return c, ok
}

func (d *PhoneticDict) Len() int { return len(d.entries) }

// LoadPhoneticDict reads a CMU-style pronouncing dictionary:
// WORD  PH1 PH2 ... Alternate pronunciations ("WORD(1)") and ";;;" comments
// are skipped.
func LoadPhoneticDict(r io.Reader) (*PhoneticDict, error) {
	d := NewPhoneticDict()
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";;;") || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected a word and at least one phoneme", lineNum)
		}
		if strings.HasSuffix(fields[0], ")") && strings.Contains(fields[0], "(") {
			continue
		}
		if err := d.Add(fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
