package lexicon

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/task"
)

// DimPlaceholder in a term-vector path is replaced by the dimensionality.
const DimPlaceholder = "{dim}"

// CategoryPaths locates the resources of one semantic category.
type CategoryPaths struct {
	Lemmas      string
	Names       string
	Permissible string
	TermVectors string
}

// Paths locates every resource; relative paths resolve against DataDir.
type Paths struct {
	DataDir      string
	EnglishWords string
	PhoneticDict string
	Categories   map[string]CategoryPaths
}

// Category holds the word lists and vectors for one semantic category.
type Category struct {
	Name        string
	Lemmas      WordSet
	Names       WordSet // multi-word names, space separated
	Permissible WordSet
	Vectors     *TermVectors // nil unless the lsa measure is active
}

// Resources is everything one run reads. It is never mutated after Load and
// is shared by all responses in a batch.
type Resources struct {
	English  WordSet
	Dict     *PhoneticDict
	Category *Category
}

// Load reads the resources needed by t. Term vectors are only read when
// withVectors is set.
func Load(p Paths, t task.Task, withVectors bool) (*Resources, error) {
	res := &Resources{}
	if t.Kind == task.Phonemic {
		var err error
		if res.English, err = readSet(p.resolve(p.EnglishWords), LoadWords); err != nil {
			return nil, err
		}
		f, err := open(p.resolve(p.PhoneticDict))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if res.Dict, err = LoadPhoneticDict(f); err != nil {
			return nil, errdefs.Wrap(errdefs.ErrResource, "phonetic dictionary", err)
		}
		return res, nil
	}

	cp, ok := p.Categories[t.Category]
	if !ok {
		return nil, errdefs.Configuration("resources", "no resources configured for category %q", t.Category)
	}
	cat := &Category{Name: t.Category}
	var err error
	if cat.Lemmas, err = readSet(p.resolve(cp.Lemmas), LoadLines); err != nil {
		return nil, err
	}
	if cat.Names, err = readSet(p.resolve(cp.Names), LoadLines); err != nil {
		return nil, err
	}
	if cat.Permissible, err = readSet(p.resolve(cp.Permissible), LoadLines); err != nil {
		return nil, err
	}
	if withVectors {
		path := p.resolve(strings.ReplaceAll(cp.TermVectors, DimPlaceholder, strconv.Itoa(t.Dimensionality)))
		f, err := open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cat.Vectors, err = LoadTermVectors(f, t.Dimensionality); err != nil {
			return nil, errdefs.Wrap(errdefs.ErrResource, path, err)
		}
	}
	res.Category = cat
	return res, nil
}

func (p Paths) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) || p.DataDir == "" {
		return name
	}
	return filepath.Join(p.DataDir, name)
}

func open(path string) (*os.File, error) {
	if path == "" {
		return nil, errdefs.Configuration("resources", "resource path is not configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrResource, "open", err)
	}
	return f, nil
}

func readSet(path string, load func(io.Reader) (WordSet, error)) (WordSet, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := load(f)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrResource, path, err)
	}
	if s.Len() == 0 {
		return nil, errdefs.Resource(path, "word list is empty")
	}
	return s, nil
}

func (c *Category) String() string {
	return fmt.Sprintf("%s(lemmas=%d names=%d permissible=%d)", c.Name, c.Lemmas.Len(), c.Names.Len(), c.Permissible.Len())
}
