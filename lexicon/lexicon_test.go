package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/task"
)

func TestCompact(t *testing.T) {
	got, err := Compact([]string{"HH", "EH0", "L", "OW1"})
	require.NoError(t, err)
	assert.Equal(t, "liLq", got)

	got, err = Compact([]string{"k", "AE1", "T"})
	require.NoError(t, err)
	assert.Equal(t, "KbT", got)

	_, err = Compact([]string{"F", "XX"})
	assert.Error(t, err)
}

func TestCompactAlphabet(t *testing.T) {
	all := append([]string{}, multiPhonemes...)
	all = append(all, "B", "D", "F", "G", "K", "L", "M", "N", "P", "R", "S", "T", "V", "W", "Y", "Z")
	got, err := Compact(all)
	require.NoError(t, err)
	assert.Len(t, got, len(all))
	for i := 0; i < len(got); i++ {
		assert.True(t, IsCompactSymbol(got[i]), "symbol %q", got[i])
	}
	assert.Equal(t, "abcdefghijklmnopqrstuvw", got[:23])
}

func TestPhoneClasses(t *testing.T) {
	assert.True(t, Vowels.Has("AA"))
	assert.False(t, Vowels.Has("F"))
	assert.True(t, Continuants.Has("F"))
	assert.True(t, Continuants.Has(StripStress("ZH")))
	assert.Equal(t, "OW", StripStress("OW12"))
}

func TestLoadPhoneticDict(t *testing.T) {
	src := `;;; comment
FISH  F IH1 SH
FISH(1)  F IY1 SH
CAT  K AE1 T
`
	d, err := LoadPhoneticDict(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	c, ok := d.Lookup("fish")
	require.True(t, ok)
	assert.Equal(t, "Fms", c)

	_, ok = d.Lookup("dog")
	assert.False(t, ok)
}

func TestLoadPhoneticDictErrors(t *testing.T) {
	_, err := LoadPhoneticDict(strings.NewReader("FISH\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = LoadPhoneticDict(strings.NewReader("FISH F QQ1\n"))
	assert.ErrorContains(t, err, "QQ")
}

func TestLoadTermVectors(t *testing.T) {
	tv, err := LoadTermVectors(strings.NewReader("dog 1 0\ncat 0.5 0.5\n\n"), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, tv.Dim())
	assert.Equal(t, 2, tv.Len())
	v, ok := tv.Vector("cat")
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 0.5}, v)

	_, err = LoadTermVectors(strings.NewReader("dog 1 0\ncat 1\n"), 0)
	assert.ErrorContains(t, err, "line 2")

	_, err = LoadTermVectors(strings.NewReader("dog 1 0\n"), 3)
	assert.Error(t, err)

	_, err = LoadTermVectors(strings.NewReader("dog 1 x\n"), 0)
	assert.Error(t, err)
}

func TestWordSets(t *testing.T) {
	words, err := LoadWords(strings.NewReader("Fish friend\n fox"))
	require.NoError(t, err)
	assert.Equal(t, []string{"fish", "fox", "friend"}, words.Sorted())

	lines, err := LoadLines(strings.NewReader("polar   bear\n\n# skip\nbald eagle\n"))
	require.NoError(t, err)
	assert.True(t, lines.Has("polar bear"))
	assert.True(t, lines.Has("bald eagle"))
	assert.Equal(t, 2, lines.Len())
}

func TestLoadPhonemic(t *testing.T) {
	p := Paths{DataDir: "testdata", EnglishWords: "english.txt", PhoneticDict: "cmudict.txt"}
	res, err := Load(p, task.Task{Kind: task.Phonemic, Letter: "f"}, false)
	require.NoError(t, err)

	assert.True(t, res.English.Has("fox"))
	assert.Equal(t, 3, res.Dict.Len())
	assert.Nil(t, res.Category)
}

func TestLoadSemantic(t *testing.T) {
	p := Paths{
		DataDir: "testdata",
		Categories: map[string]CategoryPaths{
			"animals": {
				Lemmas:      "animals/lemmas.txt",
				Names:       "animals/names.txt",
				Permissible: "animals/permissible.txt",
				TermVectors: "animals/vectors_{dim}.txt",
			},
		},
	}
	tk := task.Task{Kind: task.Semantic, Category: "animals", Dimensionality: 3}

	res, err := Load(p, tk, true)
	require.NoError(t, err)
	require.NotNil(t, res.Category)
	assert.True(t, res.Category.Names.Has("bald eagle"))
	assert.True(t, res.Category.Permissible.Has("polar_bear"))
	assert.Equal(t, 3, res.Category.Vectors.Dim())

	res, err = Load(p, tk, false)
	require.NoError(t, err)
	assert.Nil(t, res.Category.Vectors)

	_, err = Load(p, task.Task{Kind: task.Semantic, Category: "fruits", Dimensionality: 3}, false)
	assert.ErrorIs(t, err, errdefs.ErrConfiguration)

	p.Categories["animals"] = CategoryPaths{Lemmas: "animals/missing.txt"}
	_, err = Load(p, tk, false)
	assert.ErrorIs(t, err, errdefs.ErrResource)
}
