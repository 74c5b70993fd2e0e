// Package similarity scores how related two units are under one of the
// phonetic or semantic models. Higher scores mean more similar.
package similarity

import (
	"math"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/lexicon"
	"github.com/speechinformaticslab/vfclust/response"
	"github.com/speechinformaticslab/vfclust/task"
)

// Model is a pure pairwise similarity function.
type Model interface {
	Name() string
	Score(a, b *response.Unit) (float64, error)
}

// New returns the model registered under name. The lsa model needs term
// vectors in res.
func New(name string, res *lexicon.Resources) (Model, error) {
	switch name {
	case task.MeasurePhone:
		return Phone{}, nil
	case task.MeasureBiphone:
		return Biphone{}, nil
	case task.MeasureLSA:
		if res == nil || res.Category == nil || res.Category.Vectors == nil {
			return nil, errdefs.Configuration("similarity", "the lsa measure needs term vectors")
		}
		return Cosine{Vectors: res.Category.Vectors}, nil
	default:
		return nil, errdefs.Configuration("similarity", "unknown similarity measure %q", name)
	}
}

// Phone is 1 minus the Levenshtein distance of the compact phonetic forms,
// normalised by the longer form.
type Phone struct{}

func (Phone) Name() string { return task.MeasurePhone }

func (Phone) Score(a, b *response.Unit) (float64, error) {
	longest := max(utf8.RuneCountInString(a.Phonetic), utf8.RuneCountInString(b.Phonetic))
	if longest == 0 {
		return 0, errdefs.Resource("phone", "no phonetic form for %q and %q", a.Text, b.Text)
	}
	d := edlib.LevenshteinDistance(a.Phonetic, b.Phonetic)
	return 1 - float64(d)/float64(longest), nil
}

// Biphone is 1 when the compact forms share their first or last two symbols.
type Biphone struct{}

func (Biphone) Name() string { return task.MeasureBiphone }

func (Biphone) Score(a, b *response.Unit) (float64, error) {
	if head(a.Phonetic) == head(b.Phonetic) || tail(a.Phonetic) == tail(b.Phonetic) {
		return 1, nil
	}
	return 0, nil
}

func head(s string) string {
	if len(s) < 2 {
		return s
	}
	return s[:2]
}

func tail(s string) string {
	if len(s) < 2 {
		return s
	}
	return s[len(s)-2:]
}

// Cosine is the cosine of the two units' term vectors.
type Cosine struct {
	Vectors *lexicon.TermVectors
}

func (Cosine) Name() string { return task.MeasureLSA }

func (c Cosine) Score(a, b *response.Unit) (float64, error) {
	va, ok := c.Vectors.Vector(a.Text)
	if !ok {
		return 0, errdefs.Resource("lsa", "no term vector for %q", a.Text)
	}
	vb, ok := c.Vectors.Vector(b.Text)
	if !ok {
		return 0, errdefs.Resource("lsa", "no term vector for %q", b.Text)
	}
	var dot, na, nb float64
	for i := range va {
		dot += va[i] * vb[i]
		na += va[i] * va[i]
		nb += vb[i] * vb[i]
	}
	if na == 0 || nb == 0 {
		return 0, errdefs.Resource("lsa", "zero term vector for %q or %q", a.Text, b.Text)
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// Adjacent scores every neighbouring pair of units.
func Adjacent(units []response.Unit, m Model) ([]float64, error) {
	if len(units) < 2 {
		return nil, nil
	}
	out := make([]float64, 0, len(units)-1)
	for i := 0; i+1 < len(units); i++ {
		s, err := m.Score(&units[i], &units[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
