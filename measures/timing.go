package measures

import (
	"strings"

	"github.com/speechinformaticslab/vfclust/collection"
	"github.com/speechinformaticslab/vfclust/decoder"
	"github.com/speechinformaticslab/vfclust/lexicon"
	"github.com/speechinformaticslab/vfclust/response"
)

const (
	KeyResponseVowelDuration      = "TIMING_response_vowel_duration_mean"
	KeyResponseContinuantDuration = "TIMING_response_continuant_duration_mean"

	NameBetweenInterval  = "between_collection_interval_duration_mean"
	NameWithinInterval   = "within_collection_interval_duration_mean"
	NameWithinVowel      = "within_collection_vowel_duration_mean"
	NameWithinContinuant = "within_collection_continuant_duration_mean"
)

// ResponseTiming writes the whole-response vowel and continuant means.
// words is nil for untimed input, which yields NA.
func ResponseTiming(m *Map, words []decoder.Word) {
	m.Set(KeyResponseVowelDuration, mean(phoneDurations(words, lexicon.Vowels)))
	m.Set(KeyResponseContinuantDuration, mean(phoneDurations(words, lexicon.Continuants)))
}

// CollectionTiming writes the per-pass timing measures. When timed is false
// every value is NA.
func CollectionTiming(m *Map, measure, ctype string, r *response.Response, words []decoder.Word, cs []collection.Collection) {
	key := func(name string, with bool) string { return TimingKey(measure, ctype, name, with) }
	if !r.Timed {
		m.Set(key(NameBetweenInterval, true), NA())
		m.Set(key(NameWithinInterval, true), NA())
		for _, with := range []bool{true, false} {
			m.Set(key(NameWithinVowel, with), NA())
			m.Set(key(NameWithinContinuant, with), NA())
		}
		return
	}

	m.Set(key(NameBetweenInterval, true), mean(betweenIntervals(r.Units, cs)))
	m.Set(key(NameWithinInterval, true), mean(withinIntervals(r.Units, cs)))
	for _, with := range []bool{true, false} {
		members := memberWords(r.Units, words, cs, with)
		m.Set(key(NameWithinVowel, with), mean(phoneDurations(members, lexicon.Vowels)))
		m.Set(key(NameWithinContinuant, with), mean(phoneDurations(members, lexicon.Continuants)))
	}
}

// betweenIntervals is the gap from each collection's last word to the next
// collection's first word; overlaps count as zero.
func betweenIntervals(units []response.Unit, cs []collection.Collection) []float64 {
	var out []float64
	for i := 0; i+1 < len(cs); i++ {
		gap := units[cs[i+1].First()].Start - units[cs[i].Last()].End
		out = append(out, max(gap, 0))
	}
	return out
}

// withinIntervals is the gap between consecutive members of every
// non-singleton collection.
func withinIntervals(units []response.Unit, cs []collection.Collection) []float64 {
	var out []float64
	for _, c := range cs {
		for i := 0; i+1 < c.Size(); i++ {
			out = append(out, units[c.Indices[i+1]].Start-units[c.Indices[i]].End)
		}
	}
	return out
}

// memberWords returns the timed word behind every member of every
// collection, skipping singletons unless withSingletons is set.
func memberWords(units []response.Unit, words []decoder.Word, cs []collection.Collection, withSingletons bool) []decoder.Word {
	var out []decoder.Word
	for _, c := range cs {
		if !withSingletons && c.Size() < 2 {
			continue
		}
		for _, idx := range c.Indices {
			if ti := units[idx].TimedIndex; ti >= 0 && ti < len(words) {
				out = append(out, words[ti])
			}
		}
	}
	return out
}

func phoneDurations(words []decoder.Word, class lexicon.PhoneClass) []float64 {
	var out []float64
	for _, w := range words {
		for _, p := range w.Phones {
			if class.Has(strings.ToUpper(p.String)) {
				out = append(out, p.Duration())
			}
		}
	}
	return out
}
