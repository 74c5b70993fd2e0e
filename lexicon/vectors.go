package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TermVectors maps words to fixed-dimension semantic vectors.
type TermVectors struct {
	dim     int
	vectors map[string][]float64
}

func NewTermVectors(dim int) *TermVectors {
	return &TermVectors{dim: dim, vectors: make(map[string][]float64)}
}

func (tv *TermVectors) Dim() int { return tv.dim }

func (tv *TermVectors) Len() int { return len(tv.vectors) }

// Add stores v for word; v must match the table dimensionality.
func (tv *TermVectors) Add(word string, v []float64) error {
	if len(v) != tv.dim {
		return fmt.Errorf("%s: vector has %d components, want %d", word, len(v), tv.dim)
	}
	tv.vectors[word] = v
	return nil
}

func (tv *TermVectors) Vector(word string) ([]float64, bool) {
	v, ok := tv.vectors[word]
	return v, ok
}

// LoadTermVectors reads "word c1 c2 ... cN" lines. The dimensionality is
// taken from the first line and enforced on the rest; want > 0 additionally
// requires that exact dimensionality.
func LoadTermVectors(r io.Reader, want int) (*TermVectors, error) {
	var tv *TermVectors
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected a word followed by components", lineNum)
		}
		if tv == nil {
			dim := len(fields) - 1
			if want > 0 && dim != want {
				return nil, fmt.Errorf("line %d: vectors have %d components, want %d", lineNum, dim, want)
			}
			tv = NewTermVectors(dim)
		}
		v := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: component %d: %w", lineNum, i+1, err)
			}
			v[i] = x
		}
		if err := tv.Add(strings.ToLower(fields[0]), v); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if tv == nil {
		tv = NewTermVectors(want)
	}
	return tv, nil
}
