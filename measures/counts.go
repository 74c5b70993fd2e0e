package measures

import (
	"strings"

	"github.com/speechinformaticslab/vfclust/response"
)

const (
	KeyTotalWords             = "COUNT_total_words"
	KeyPermissibleWords       = "COUNT_permissible_words"
	KeyExactRepetitions       = "COUNT_exact_repetitions"
	KeyStemRepetitions        = "COUNT_stem_repetitions"
	KeyExaminerWords          = "COUNT_examiner_words"
	KeyFilledPauses           = "COUNT_filled_pauses"
	KeyWordFragments          = "COUNT_word_fragments"
	KeyAsides                 = "COUNT_asides"
	KeyUniquePermissibleWords = "COUNT_unique_permissible_words"
)

type Label string

const (
	LabelPermissible     Label = "PERMISSIBLE WORD"
	LabelExactRepetition Label = "EXACT REPETITION"
	LabelStemRepetition  Label = "STEM REPETITION"
	LabelExaminer        Label = "EXAMINER WORD"
	LabelFragment        Label = "WORD FRAGMENT"
	LabelFilledPause     Label = "FILLED PAUSE"
	LabelAside           Label = "ASIDE"
	LabelNoise           Label = "NOISE"
)

// noise tokens are transcription tags that are not counted at all.
var noise = map[string]struct{}{
	"": {}, "sil": {}, "!sil": {}, "sp": {},
	"t_noise": {}, "t_cough": {}, "t_lipsmack": {}, "t_breath": {},
}

// Labeled is one token and its count category.
type Labeled struct {
	Word  string
	Label Label
}

// Counter classifies tokens before the response is cleaned.
type Counter struct {
	Admissible func(word string) bool
	Stem       func(word string) string
}

// Count labels every unit and writes the COUNT_ measures to m.
func (c Counter) Count(m *Map, units []response.Unit) []Labeled {
	counts := map[string]int{}
	said := map[string]struct{}{}
	stems := map[string]struct{}{}
	labels := make([]Labeled, 0, len(units))

	for _, u := range units {
		w := strings.ToLower(u.Text)
		var l Label
		switch {
		case c.Admissible(w):
			counts[KeyTotalWords]++
			counts[KeyPermissibleWords]++
			st := c.Stem(w)
			if _, ok := said[w]; ok {
				counts[KeyExactRepetitions]++
				l = LabelExactRepetition
			} else if _, ok := stems[st]; ok {
				counts[KeyStemRepetitions]++
				l = LabelStemRepetition
			} else {
				l = LabelPermissible
			}
			said[w] = struct{}{}
			stems[st] = struct{}{}
		case strings.HasPrefix(w, "e_"):
			counts[KeyExaminerWords]++
			l = LabelExaminer
		case strings.HasSuffix(w, "-"):
			counts[KeyWordFragments]++
			l = LabelFragment
		case strings.HasPrefix(w, "filledpause"):
			counts[KeyFilledPauses]++
			l = LabelFilledPause
		case isNoise(w):
			l = LabelNoise
		default:
			counts[KeyTotalWords]++
			counts[KeyAsides]++
			l = LabelAside
		}
		labels = append(labels, Labeled{Word: w, Label: l})
	}

	for _, k := range []string{
		KeyTotalWords, KeyPermissibleWords, KeyExactRepetitions, KeyStemRepetitions,
		KeyExaminerWords, KeyFilledPauses, KeyWordFragments, KeyAsides,
	} {
		m.Set(k, Int(counts[k]))
	}
	m.Set(KeyUniquePermissibleWords, Int(counts[KeyPermissibleWords]-counts[KeyExactRepetitions]-counts[KeyStemRepetitions]))
	return labels
}

func isNoise(w string) bool {
	_, ok := noise[w]
	return ok
}
