// Package collection finds clusters and chains of related units.
//
// Both kinds grow a run from every start index: a cluster accepts the next
// unit when it is related to every member, a chain when it is related to
// the last member. A run that lies inside an already recorded run is not
// recorded again; overlapping runs that extend past one another are kept.
package collection

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/response"
	"github.com/speechinformaticslab/vfclust/similarity"
	"github.com/speechinformaticslab/vfclust/task"
)

// Collection is a contiguous run of unit indices.
type Collection struct {
	Indices []int
}

func (c Collection) Size() int { return len(c.Indices) }

func (c Collection) First() int { return c.Indices[0] }

func (c Collection) Last() int { return c.Indices[len(c.Indices)-1] }

func (c Collection) String() string {
	parts := make([]string, len(c.Indices))
	for i, x := range c.Indices {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}

type span struct{ first, last int }

// Detector runs one (similarity model, collection type) pass.
type Detector struct {
	Kind      string
	Model     similarity.Model
	Threshold float64
}

func NewDetector(kind string, m similarity.Model, threshold float64) (*Detector, error) {
	if kind != task.Cluster && kind != task.Chain {
		return nil, errdefs.Configuration("collection", "unknown collection type %q", kind)
	}
	if m == nil {
		return nil, errdefs.Configuration("collection", "a similarity model is required")
	}
	return &Detector{Kind: kind, Model: m, Threshold: threshold}, nil
}

// Detect returns the collections of units in order of their first index.
// Singletons are included.
func (d *Detector) Detect(units []response.Unit) ([]Collection, error) {
	var out []Collection
	seen := map[span]struct{}{}
	for start := range units {
		c, err := d.Grow(units, start)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[span{c.First(), c.Last()}]; dup {
			continue
		}
		for a := c.First(); a <= c.Last(); a++ {
			for b := a; b <= c.Last(); b++ {
				seen[span{a, b}] = struct{}{}
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// Grow extends a run from start for as long as the next unit passes the
// membership test.
func (d *Detector) Grow(units []response.Unit, start int) (Collection, error) {
	idx := []int{start}
	for next := start + 1; next < len(units); next++ {
		ok, err := d.accepts(units, idx, next)
		if err != nil {
			return Collection{}, err
		}
		if !ok {
			break
		}
		idx = append(idx, next)
	}
	return Collection{Indices: idx}, nil
}

func (d *Detector) accepts(units []response.Unit, members []int, next int) (bool, error) {
	if d.Kind == task.Chain {
		s, err := d.Model.Score(&units[next-1], &units[next])
		if err != nil {
			return false, err
		}
		return s >= d.Threshold, nil
	}
	for _, m := range members {
		s, err := d.Model.Score(&units[next], &units[m])
		if err != nil {
			return false, err
		}
		if s < d.Threshold {
			return false, nil
		}
	}
	return true, nil
}

// Sizes returns the size of each collection, optionally dropping singletons.
func Sizes(cs []Collection, withSingletons bool) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		if !withSingletons && c.Size() == 1 {
			continue
		}
		out = append(out, c.Size())
	}
	return out
}

// Table renders collections for debug logging.
func Table(units []response.Unit, cs []Collection) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Collection\tIndices\tSize")
	for _, c := range cs {
		words := make([]string, len(c.Indices))
		for i, x := range c.Indices {
			words[i] = units[x].Text
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", strings.Join(words, ", "), c, c.Size())
	}
	tw.Flush()
	return b.String()
}
