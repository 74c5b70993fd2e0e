// Package lexicon loads the read-only lexical resources used during scoring:
// word lists, the phonetic dictionary, and semantic term vectors.
package lexicon

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// WordSet is an immutable set of lower-cased entries.
type WordSet map[string]struct{}

func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

func (s WordSet) Len() int { return len(s) }

// Sorted returns the entries in lexical order.
func (s WordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// LoadWords reads whitespace-separated entries.
func LoadWords(r io.Reader) (WordSet, error) {
	s := WordSet{}
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		s[strings.ToLower(sc.Text())] = struct{}{}
	}
	return s, sc.Err()
}

// LoadLines reads one entry per line, so entries may contain spaces
// ("polar bear"). Blank lines and lines starting with '#' are skipped and
// inner whitespace is collapsed to single spaces.
func LoadLines(r io.Reader) (WordSet, error) {
	s := WordSet{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s[strings.ToLower(strings.Join(strings.Fields(line), " "))] = struct{}{}
	}
	return s, sc.Err()
}
