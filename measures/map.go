// Package measures aggregates count, collection, and timing measures for a
// scored response.
package measures

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NAString is how a not-applicable value is rendered in tabular output.
const NAString = "NA"

// Value is a number or the not-applicable sentinel. The zero Value is NA.
type Value struct {
	v  float64
	ok bool
}

func NA() Value { return Value{} }

func Num(x float64) Value { return Value{v: x, ok: true} }

func Int(n int) Value { return Num(float64(n)) }

func (v Value) IsNA() bool { return !v.ok }

// Float returns the number and whether the value is applicable.
func (v Value) Float() (float64, bool) { return v.v, v.ok }

func (v Value) String() string {
	if !v.ok {
		return NAString
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

func (v Value) MarshalYAML() (interface{}, error) {
	if !v.ok {
		return nil, nil
	}
	return v.v, nil
}

// Map holds the measures of one response. Every key is written once.
type Map struct {
	vals map[string]Value
}

func NewMap() *Map { return &Map{vals: make(map[string]Value)} }

// Set stores v under key. Writing a key twice is a programming error and
// panics.
func (m *Map) Set(key string, v Value) {
	if _, dup := m.vals[key]; dup {
		panic(fmt.Sprintf("measures: %s written twice", key))
	}
	m.vals[key] = v
}

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

func (m *Map) Len() int { return len(m.vals) }

// Keys returns every key in lexical order.
func (m *Map) Keys() []string { return m.KeysWithPrefix("") }

func (m *Map) KeysWithPrefix(prefix string) []string {
	var out []string
	for k := range m.vals {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Ordered returns keys grouped COUNT_, COLLECTION_, TIMING_, each sorted.
func (m *Map) Ordered() []string {
	var out []string
	for _, p := range []string{PrefixCount, PrefixCollection, PrefixTiming} {
		out = append(out, m.KeysWithPrefix(p)...)
	}
	return out
}

func (m *Map) MarshalJSON() ([]byte, error) { return json.Marshal(m.vals) }

func (m *Map) MarshalYAML() (interface{}, error) {
	out := make(map[string]Value, len(m.vals))
	for k, v := range m.vals {
		out[k] = v
	}
	return out, nil
}

const (
	PrefixCount      = "COUNT_"
	PrefixCollection = "COLLECTION_"
	PrefixTiming     = "TIMING_"
)

// CollectionKey names a per-pass collection measure.
func CollectionKey(measure, ctype, name string, withSingletons bool) string {
	return PrefixCollection + measure + "_" + ctype + "_" + singletonPart(withSingletons) + name
}

// PairwiseKey names the pairwise mean similarity of one measure.
func PairwiseKey(measure string) string {
	return PrefixCollection + measure + "_pairwise_similarity_score_mean"
}

// TimingKey names a per-pass timing measure.
func TimingKey(measure, ctype, name string, withSingletons bool) string {
	return PrefixTiming + measure + "_" + ctype + "_" + singletonPart(withSingletons) + name
}

func singletonPart(withSingletons bool) string {
	if withSingletons {
		return ""
	}
	return "no_singletons_"
}

func mean(xs []float64) Value {
	if len(xs) == 0 {
		return NA()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return Num(sum / float64(len(xs)))
}
