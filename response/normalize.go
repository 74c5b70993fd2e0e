package response

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/lexicon"
	"github.com/speechinformaticslab/vfclust/task"
)

// MaxCompoundWords is the longest multi-word name tried during compounding.
const MaxCompoundWords = 5

type Stemmer interface {
	Stem(word string) string
}

type Lemmatizer interface {
	Lemmatize(word string) string
}

// Transcriber produces an ARPAbet transcription for words missing from the
// phonetic dictionary.
type Transcriber interface {
	Transcribe(ctx context.Context, word string) ([]string, error)
}

// Normalizer turns raw units into the canonical analysis sequence. It holds
// only read-only state and may be shared between goroutines.
type Normalizer struct {
	task        task.Task
	res         *lexicon.Resources
	stemmer     Stemmer
	lemmatizer  Lemmatizer
	transcriber Transcriber
	log         *logrus.Entry
}

type Option func(*Normalizer)

func WithLemmatizer(l Lemmatizer) Option {
	return func(n *Normalizer) { n.lemmatizer = l }
}

func WithTranscriber(t Transcriber) Option {
	return func(n *Normalizer) { n.transcriber = t }
}

func WithLogger(l *logrus.Entry) Option {
	return func(n *Normalizer) { n.log = l }
}

// NewNormalizer checks that res carries what t needs.
func NewNormalizer(t task.Task, res *lexicon.Resources, stemmer Stemmer, opts ...Option) (*Normalizer, error) {
	if res == nil || stemmer == nil {
		return nil, errdefs.Configuration("normalizer", "resources and stemmer are required")
	}
	switch t.Kind {
	case task.Phonemic:
		if res.English == nil || res.Dict == nil {
			return nil, errdefs.Configuration("normalizer", "letter task needs an English word list and a phonetic dictionary")
		}
	case task.Semantic:
		if res.Category == nil {
			return nil, errdefs.Configuration("normalizer", "category task needs category resources")
		}
	default:
		return nil, errdefs.Configuration("normalizer", "unknown task kind")
	}
	n := &Normalizer{task: t, res: res, stemmer: stemmer, log: logrus.NewEntry(logrus.StandardLogger())}
	for _, o := range opts {
		o(n)
	}
	return n, nil
}

// Stem exposes the stemming oracle to the count measures.
func (n *Normalizer) Stem(word string) string { return n.stemmer.Stem(word) }

// Prepare lemmatizes and compounds a category response. Letter responses are
// returned unchanged.
func (n *Normalizer) Prepare(r *Response) *Response {
	if n.task.Kind != task.Semantic {
		return r.with(cloneUnits(r.Units))
	}
	units := n.Lemmatize(r.Units)
	units = n.Compound(units)
	return r.with(units)
}

// Clean drops inadmissible units, merges adjacent units sharing a stem, and
// for letter tasks assigns phonetic forms.
func (n *Normalizer) Clean(ctx context.Context, r *Response) (*Response, error) {
	units := n.Filter(r.Units)
	units = n.MergeStems(units)
	if n.task.Kind == task.Phonemic {
		var err error
		if units, err = n.AssignPhonetics(ctx, units); err != nil {
			return nil, err
		}
	}
	out := r.with(units)
	if n.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		n.log.Debugf("cleaned response:\n%s", out.Table())
	}
	return out, nil
}

// Lemmatize replaces a unit's text by its lemma when the lemma is a known
// canonical form.
func (n *Normalizer) Lemmatize(units []Unit) []Unit {
	out := cloneUnits(units)
	if n.lemmatizer == nil || n.res.Category == nil {
		return out
	}
	for i := range out {
		if lemma := n.lemmatizer.Lemmatize(out[i].Text); n.res.Category.Lemmas.Has(lemma) {
			out[i].Text = lemma
		}
	}
	return out
}

// Compound greedily merges runs of 5..2 adjacent units whose space-joined
// text is a known multi-word name, scanning left to right.
func (n *Normalizer) Compound(units []Unit) []Unit {
	if n.res.Category == nil {
		return cloneUnits(units)
	}
	names := n.res.Category.Names
	out := make([]Unit, 0, len(units))
	for i := 0; i < len(units); {
		size := 0
		for k := MaxCompoundWords; k >= 2; k-- {
			if i+k <= len(units) && names.Has(joinTexts(units[i:i+k], " ")) {
				size = k
				break
			}
		}
		if size == 0 {
			out = append(out, cloneUnit(units[i]))
			i++
			continue
		}
		merged := mergeRun(units[i : i+size])
		n.log.Debugf("compound: %s -> %s", joinTexts(units[i:i+size], " "), merged.Text)
		out = append(out, merged)
		i += size
	}
	return out
}

// Admissible reports whether text is a valid answer for the task.
func (n *Normalizer) Admissible(text string) bool {
	if n.task.Kind == task.Phonemic {
		return strings.HasPrefix(text, n.task.Letter) &&
			!strings.HasSuffix(text, "-") &&
			!strings.Contains(text, "_") &&
			n.res.English.Has(text)
	}
	return n.res.Category.Permissible.Has(text)
}

// Filter keeps admissible units only.
func (n *Normalizer) Filter(units []Unit) []Unit {
	out := make([]Unit, 0, len(units))
	for _, u := range units {
		if !n.Admissible(u.Text) {
			n.log.Debugf("removing %q", u.Text)
			continue
		}
		out = append(out, cloneUnit(u))
	}
	return out
}

// MergeStems folds each unit into its predecessor when both share a stem.
// The surviving unit keeps its text and start time and takes the end time
// of the folded unit.
func (n *Normalizer) MergeStems(units []Unit) []Unit {
	out := make([]Unit, 0, len(units))
	for _, u := range units {
		if k := len(out) - 1; k >= 0 && n.stemmer.Stem(out[k].Text) == n.stemmer.Stem(u.Text) {
			n.log.Debugf("same stem: %s/%s", strings.Join(out[k].Original, "/"), strings.Join(u.Original, "/"))
			out[k].Original = append(out[k].Original, u.Original...)
			out[k].End = u.End
			continue
		}
		out = append(out, cloneUnit(u))
	}
	return out
}

// AssignPhonetics sets the compact phonetic form of every unit that does not
// have one, from the dictionary or else from the transcriber.
func (n *Normalizer) AssignPhonetics(ctx context.Context, units []Unit) ([]Unit, error) {
	out := cloneUnits(units)
	for i := range out {
		if out[i].Phonetic != "" {
			continue
		}
		word := out[i].Text
		if c, ok := n.res.Dict.Lookup(word); ok {
			out[i].Phonetic = c
			continue
		}
		if n.transcriber == nil {
			return nil, errdefs.Transcription("phonetics", "%q is not in the phonetic dictionary and no transcriber is configured", word)
		}
		phonemes, err := n.transcriber.Transcribe(ctx, word)
		if err != nil {
			return nil, errdefs.Wrap(errdefs.ErrTranscription, "transcribe "+word, err)
		}
		c, err := lexicon.Compact(phonemes)
		if err != nil {
			return nil, errdefs.Wrap(errdefs.ErrTranscription, "transcribe "+word, err)
		}
		if c == "" {
			return nil, errdefs.Transcription("transcribe "+word, "empty transcription")
		}
		n.log.WithField("word", word).Debugf("generated phonetic form %q", c)
		out[i].Phonetic = c
	}
	return out, nil
}

func mergeRun(run []Unit) Unit {
	u := cloneUnit(run[0])
	for _, next := range run[1:] {
		u.Text += "_" + next.Text
		u.Original = append(u.Original, next.Original...)
	}
	u.End = run[len(run)-1].End
	return u
}

func joinTexts(units []Unit, sep string) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = u.Text
	}
	return strings.Join(parts, sep)
}

func cloneUnit(u Unit) Unit {
	u.Original = append([]string(nil), u.Original...)
	return u
}

func cloneUnits(units []Unit) []Unit {
	out := make([]Unit, len(units))
	for i, u := range units {
		out[i] = cloneUnit(u)
	}
	return out
}
