package response

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speechinformaticslab/vfclust/decoder"
	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/lexicon"
	"github.com/speechinformaticslab/vfclust/morph"
	"github.com/speechinformaticslab/vfclust/task"
)

type fakeTranscriber struct {
	out   map[string][]string
	err   error
	calls []string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, word string) ([]string, error) {
	f.calls = append(f.calls, word)
	if f.err != nil {
		return nil, f.err
	}
	return f.out[word], nil
}

func semanticNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	res := &lexicon.Resources{Category: &lexicon.Category{
		Name:        "animals",
		Lemmas:      lexicon.NewWordSet("dog", "cat", "lion", "bear", "polar_bear"),
		Names:       lexicon.NewWordSet("polar bear", "great white shark", "bald eagle"),
		Permissible: lexicon.NewWordSet("dog", "cat", "lion", "polar_bear", "great_white_shark", "bear"),
	}}
	stemmer, err := morph.NewStemmer("")
	require.NoError(t, err)
	lemmatizer, err := morph.NewLemmatizer(nil)
	require.NoError(t, err)
	n, err := NewNormalizer(task.Task{Kind: task.Semantic, Category: "animals", Dimensionality: 91}, res, stemmer,
		WithLemmatizer(lemmatizer))
	require.NoError(t, err)
	return n
}

func phonemicNormalizer(t *testing.T, tr Transcriber) *Normalizer {
	t.Helper()
	dict := lexicon.NewPhoneticDict()
	require.NoError(t, dict.Add("fish", []string{"F", "IH1", "SH"}))
	require.NoError(t, dict.Add("friend", []string{"F", "R", "EH1", "N", "D"}))
	res := &lexicon.Resources{
		English: lexicon.NewWordSet("fish", "fishing", "friend", "fox", "flamingo", "apple"),
		Dict:    dict,
	}
	stemmer, err := morph.NewStemmer("")
	require.NoError(t, err)
	opts := []Option{}
	if tr != nil {
		opts = append(opts, WithTranscriber(tr))
	}
	n, err := NewNormalizer(task.Task{Kind: task.Phonemic, Letter: "f"}, res, stemmer, opts...)
	require.NoError(t, err)
	return n
}

func TestNewNormalizerValidates(t *testing.T) {
	stemmer, _ := morph.NewStemmer("")
	_, err := NewNormalizer(task.Task{Kind: task.Phonemic, Letter: "f"}, &lexicon.Resources{}, stemmer)
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)
	_, err = NewNormalizer(task.Task{Kind: task.Semantic, Category: "animals"}, &lexicon.Resources{}, stemmer)
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)
	_, err = NewNormalizer(task.Task{Kind: task.Semantic}, nil, stemmer)
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)
}

func TestCategoryScenario(t *testing.T) {
	n := semanticNormalizer(t)
	r := FromTokens("s1", []string{"dog", "cat", "cats", "lion"})

	prepared := n.Prepare(r)
	assert.Equal(t, []string{"dog", "cat", "cat", "lion"}, prepared.Texts())

	cleaned, err := n.Clean(context.Background(), prepared)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "cat", "lion"}, cleaned.Texts())
	assert.Equal(t, []string{"cat", "cats"}, cleaned.Units[1].Original)

	// input is left untouched
	assert.Equal(t, []string{"dog", "cat", "cats", "lion"}, r.Texts())
}

func TestCompound(t *testing.T) {
	n := semanticNormalizer(t)
	r := &Response{Timed: true, Units: []Unit{
		{Text: "great", Original: []string{"great"}, Start: 0, End: 1},
		{Text: "white", Original: []string{"white"}, Start: 1, End: 2},
		{Text: "shark", Original: []string{"shark"}, Start: 2, End: 3},
		{Text: "polar", Original: []string{"polar"}, Start: 3, End: 4},
		{Text: "bear", Original: []string{"bear"}, Start: 4, End: 5},
		{Text: "bear", Original: []string{"bear"}, Start: 5, End: 6},
	}}

	got := n.Compound(r.Units)
	require.Len(t, got, 3)
	assert.Equal(t, "great_white_shark", got[0].Text)
	assert.Equal(t, []string{"great", "white", "shark"}, got[0].Original)
	assert.Equal(t, 0.0, got[0].Start)
	assert.Equal(t, 3.0, got[0].End)
	assert.Equal(t, "polar_bear", got[1].Text)
	assert.Equal(t, 3.0, got[1].Start)
	assert.Equal(t, 5.0, got[1].End)
	assert.Equal(t, "bear", got[2].Text)

	assert.Equal(t, got, n.Compound(got), "compounding is idempotent")
}

func TestCompoundPrefersLongestEarliest(t *testing.T) {
	res := &lexicon.Resources{Category: &lexicon.Category{
		Lemmas:      lexicon.NewWordSet(),
		Names:       lexicon.NewWordSet("a b", "a b c", "b c d"),
		Permissible: lexicon.NewWordSet(),
	}}
	stemmer, _ := morph.NewStemmer("")
	n, err := NewNormalizer(task.Task{Kind: task.Semantic, Category: "x", Dimensionality: 50}, res, stemmer)
	require.NoError(t, err)

	got := FromTokens("", []string{"a", "b", "c", "d"})
	assert.Equal(t, []string{"a_b_c", "d"}, got.with(n.Compound(got.Units)).Texts())
}

func TestCompoundEmpty(t *testing.T) {
	n := semanticNormalizer(t)
	assert.Empty(t, n.Compound(nil))
}

func TestMergeStems(t *testing.T) {
	n := semanticNormalizer(t)
	units := FromTokens("", []string{"fish", "fishing", "fishes", "cat", "fish"}).Units
	for i := range units {
		units[i].End = float64(i + 1)
	}

	got := n.MergeStems(units)
	require.Len(t, got, 3)
	assert.Equal(t, "fish", got[0].Text)
	assert.Equal(t, []string{"fish", "fishing", "fishes"}, got[0].Original)
	assert.Equal(t, 3.0, got[0].End)
	for i := 0; i+1 < len(got); i++ {
		assert.NotEqual(t, n.Stem(got[i].Text), n.Stem(got[i+1].Text))
	}
	assert.Equal(t, []string{"fish"}, units[0].Original, "input not mutated")
}

func TestLetterFiltering(t *testing.T) {
	n := phonemicNormalizer(t, nil)
	r := FromTokens("s1", []string{"fish", "friend", "FILLEDPAUSE_um", "f-", "apple", "frobnicate", "e_fine"})

	assert.Equal(t, []string{"fish", "friend"}, n.Prepare(r).with(n.Filter(n.Prepare(r).Units)).Texts())
	assert.True(t, n.Admissible("fish"))
	assert.False(t, n.Admissible("filledpause_um"))
	assert.False(t, n.Admissible("f-"))
}

func TestLetterSkipsLemmatizeAndCompound(t *testing.T) {
	n := phonemicNormalizer(t, nil)
	r := FromTokens("s1", []string{"fishes"})
	assert.Equal(t, []string{"fishes"}, n.Prepare(r).Texts())
}

func TestAssignPhonetics(t *testing.T) {
	tr := &fakeTranscriber{out: map[string][]string{"fox": {"F", "AA1", "K", "S"}}}
	n := phonemicNormalizer(t, tr)

	r := FromTokens("s1", []string{"fish", "fox", "friend"})
	cleaned, err := n.Clean(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, []string{"Fms", "FaKS", "FRiND"}, []string{
		cleaned.Units[0].Phonetic, cleaned.Units[1].Phonetic, cleaned.Units[2].Phonetic,
	})
	assert.Equal(t, []string{"fox"}, tr.calls)
	for _, u := range cleaned.Units {
		for i := 0; i < len(u.Phonetic); i++ {
			assert.True(t, lexicon.IsCompactSymbol(u.Phonetic[i]))
		}
	}

	// assigned forms are never recomputed
	again, err := n.AssignPhonetics(context.Background(), cleaned.Units)
	require.NoError(t, err)
	assert.Equal(t, cleaned.Units, again)
	assert.Len(t, tr.calls, 1)
}

func TestAssignPhoneticsErrors(t *testing.T) {
	units := FromTokens("", []string{"fox"}).Units

	_, err := phonemicNormalizer(t, nil).AssignPhonetics(context.Background(), units)
	assert.ErrorIs(t, err, errdefs.ErrTranscription)

	boom := errors.New("t2p crashed")
	_, err = phonemicNormalizer(t, &fakeTranscriber{err: boom}).AssignPhonetics(context.Background(), units)
	assert.ErrorIs(t, err, errdefs.ErrTranscription)
	assert.ErrorIs(t, err, boom)

	_, err = phonemicNormalizer(t, &fakeTranscriber{out: map[string][]string{}}).AssignPhonetics(context.Background(), units)
	assert.ErrorIs(t, err, errdefs.ErrTranscription)

	_, err = phonemicNormalizer(t, &fakeTranscriber{out: map[string][]string{"fox": {"F", "QX1"}}}).AssignPhonetics(context.Background(), units)
	assert.ErrorIs(t, err, errdefs.ErrTranscription)
}

func TestFromTranscript(t *testing.T) {
	tr := &decoder.Transcript{FileID: "x", Timed: true, Words: []decoder.Word{
		{String: "dog", Start: 0.5, End: 1},
		{String: "cat", Start: 1.5, End: 2},
	}}
	r := FromTranscript(tr)
	assert.True(t, r.Timed)
	assert.Equal(t, 1, r.Units[1].TimedIndex)
	assert.Equal(t, 1.5, r.Units[1].Start)
	assert.Contains(t, r.Table(), "dog")

	untimed := FromTranscript(&decoder.Transcript{Words: []decoder.Word{{String: "dog"}}})
	assert.Equal(t, -1, untimed.Units[0].TimedIndex)
}
