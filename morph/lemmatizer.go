package morph

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// english is loaded once; the dictionary is read-only afterwards.
var english = sync.OnceValues(func() (*golem.Lemmatizer, error) {
	return golem.New(en.New())
})

// nounSuffixes are the WordNet noun detachment rules, tried in order.
var nounSuffixes = []struct{ from, to string }{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// nounExceptions is the part of WordNet's noun exception list that shows up
// in category responses.
var nounExceptions = map[string]string{
	"mice":        "mouse",
	"geese":       "goose",
	"oxen":        "ox",
	"teeth":       "tooth",
	"feet":        "foot",
	"lice":        "louse",
	"children":    "child",
	"people":      "person",
	"wolves":      "wolf",
	"calves":      "calf",
	"halves":      "half",
	"knives":      "knife",
	"leaves":      "leaf",
	"wives":       "wife",
	"loaves":      "loaf",
	"elves":       "elf",
	"hooves":      "hoof",
	"cacti":       "cactus",
	"fungi":       "fungus",
	"octopi":      "octopus",
	"hippopotami": "hippopotamus",
	"larvae":      "larva",
	"bacteria":    "bacterium",
	"phyla":       "phylum",
	"genera":      "genus",
	"dice":        "die",
	"mosquitoes":  "mosquito",
	"buffaloes":   "buffalo",
	"flamingoes":  "flamingo",
	"dingoes":     "dingo",
	"potatoes":    "potato",
	"tomatoes":    "tomato",
}

// Lemmatizer maps inflected words to a base form. Candidates come from the
// golem English dictionary, then the noun exception list, then the
// detachment rules; a candidate is accepted only when it is in the
// vocabulary. A nil vocabulary accepts the first candidate.
type Lemmatizer struct {
	dict  *golem.Lemmatizer
	vocab map[string]struct{}
}

func NewLemmatizer(vocab map[string]struct{}) (*Lemmatizer, error) {
	dict, err := english()
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &Lemmatizer{dict: dict, vocab: vocab}, nil
}

// Lemmatize returns the lemma of word, or word itself when none is found.
func (l *Lemmatizer) Lemmatize(word string) string {
	if l.known(word) {
		return word
	}
	for _, cand := range l.dict.Lemmas(word) {
		if cand != word && (l.vocab == nil || l.known(cand)) {
			return cand
		}
	}
	if base, ok := nounExceptions[word]; ok {
		return base
	}
	if strings.HasSuffix(word, "ss") {
		return word
	}
	for _, r := range nounSuffixes {
		if !strings.HasSuffix(word, r.from) || len(word) <= len(r.from) {
			continue
		}
		cand := strings.TrimSuffix(word, r.from) + r.to
		if l.vocab == nil || l.known(cand) {
			return cand
		}
	}
	return word
}

func (l *Lemmatizer) known(w string) bool {
	if l.vocab == nil {
		return false
	}
	_, ok := l.vocab[w]
	return ok
}
