// Package morph provides the stemming and lemmatization oracles used to
// normalise fluency responses.
package morph

import (
	"fmt"
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/surgebase/porter2"
)

const (
	AlgorithmPorter  = "porter"
	AlgorithmPorter2 = "porter2"
)

// Stemmer reduces words to their stems. Compound names joined with "_" are
// stemmed part by part so "polar_bears" and "polar_bear" agree.
type Stemmer struct {
	algorithm string
}

// NewStemmer returns a stemmer for algorithm; "" selects the original
// Porter algorithm.
func NewStemmer(algorithm string) (*Stemmer, error) {
	switch strings.ToLower(algorithm) {
	case "", AlgorithmPorter:
		return &Stemmer{algorithm: AlgorithmPorter}, nil
	case AlgorithmPorter2:
		return &Stemmer{algorithm: AlgorithmPorter2}, nil
	default:
		return nil, fmt.Errorf("invalid stemming algorithm %q (must be porter or porter2)", algorithm)
	}
}

func (s *Stemmer) Algorithm() string { return s.algorithm }

// Stem returns the stem of word.
func (s *Stemmer) Stem(word string) string {
	if strings.Contains(word, "_") {
		parts := strings.Split(word, "_")
		for i, p := range parts {
			parts[i] = s.stem(p)
		}
		return strings.Join(parts, "_")
	}
	return s.stem(word)
}

func (s *Stemmer) stem(word string) string {
	if word == "" {
		return word
	}
	if s.algorithm == AlgorithmPorter2 {
		return porter2.Stem(word)
	}
	return porterstemmer.StemString(word)
}
