// Package task describes which fluency test a response belongs to.
package task

import (
	"fmt"
	"strings"

	"github.com/speechinformaticslab/vfclust/errdefs"
)

type Kind int

const (
	Phonemic Kind = iota + 1 // letter task, e.g. "words starting with f"
	Semantic                 // category task, e.g. "animals"
)

func (k Kind) String() string {
	switch k {
	case Phonemic:
		return "PHONETIC"
	case Semantic:
		return "SEMANTIC"
	default:
		return "UNKNOWN"
	}
}

// Similarity measure names.
const (
	MeasurePhone   = "phone"
	MeasureBiphone = "biphone"
	MeasureLSA     = "lsa"
)

// Collection type names.
const (
	Cluster = "cluster"
	Chain   = "chain"
)

const (
	MinDimensionality = 50
	MaxDimensionality = 100
)

// Task is one letter or category selection plus the semantic-space parameter.
type Task struct {
	Kind           Kind
	Letter         string
	Category       string
	Dimensionality int
}

// New validates a letter/category selection. Exactly one of them must be set.
// Dimensionality is only checked for category tasks.
func New(letter, category string, dimensionality int) (Task, error) {
	letter = strings.ToLower(strings.TrimSpace(letter))
	category = strings.ToLower(strings.TrimSpace(category))
	switch {
	case letter != "" && category != "":
		return Task{}, errdefs.Configuration("task", "choose either a letter or a category, not both")
	case letter == "" && category == "":
		return Task{}, errdefs.Configuration("task", "a letter (-p) or a category (-s) is required")
	case letter != "":
		if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
			return Task{}, errdefs.Configuration("task", "letter must be a single a-z character, got %q", letter)
		}
		return Task{Kind: Phonemic, Letter: letter}, nil
	}
	if dimensionality < MinDimensionality || dimensionality > MaxDimensionality {
		return Task{}, errdefs.Configuration("task",
			"only semantic dimensionalities in the range %d-%d are supported, got %d",
			MinDimensionality, MaxDimensionality, dimensionality)
	}
	return Task{Kind: Semantic, Category: category, Dimensionality: dimensionality}, nil
}

// Target is the letter or the category name.
func (t Task) Target() string {
	if t.Kind == Phonemic {
		return t.Letter
	}
	return t.Category
}

// Name is the canonical identifier used in output file names.
func (t Task) Name() string {
	if t.Kind == Phonemic {
		return "phonemic_" + t.Letter
	}
	return "semantic_" + t.Category
}

// ValidMeasures lists the similarity measures that apply to the task kind.
func (t Task) ValidMeasures() []string {
	if t.Kind == Phonemic {
		return []string{MeasurePhone, MeasureBiphone}
	}
	return []string{MeasureLSA}
}

// Measures filters requested down to the measures valid for the task, keeping
// the requested order. An empty request selects all valid measures.
func (t Task) Measures(requested []string) ([]string, error) {
	valid := t.ValidMeasures()
	if len(requested) == 0 {
		return valid, nil
	}
	var out []string
	for _, m := range requested {
		m = strings.ToLower(strings.TrimSpace(m))
		for _, v := range valid {
			if m == v && !contains(out, m) {
				out = append(out, m)
			}
		}
	}
	if len(out) == 0 {
		return nil, errdefs.Configuration("task", "none of %v apply to a %s task (valid: %v)", requested, t.Kind, valid)
	}
	return out, nil
}

// CollectionTypes validates requested collection types; empty selects both.
func CollectionTypes(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return []string{Cluster, Chain}, nil
	}
	var out []string
	for _, c := range requested {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != Cluster && c != Chain {
			return nil, errdefs.Configuration("task", "unknown collection type %q", c)
		}
		if !contains(out, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (t Task) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Target())
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
