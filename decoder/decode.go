package decoder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/speechinformaticslab/vfclust/errdefs"
)

const (
	ExtCSV      = ".csv"
	ExtTextGrid = ".textgrid"
)

// Supported reports whether path has an extension Decode accepts.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV, ExtTextGrid:
		return true
	}
	return false
}

// Decode opens path and dispatches on its extension.
func Decode(path string) (*Transcript, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, errdefs.Format("decode",
			"only comma-separated (.csv) or Praat TextGrid (.TextGrid) responses are accepted, got %q", filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ext == ExtCSV {
		id, tokens, err := ParseCSV(f)
		if err != nil {
			return nil, err
		}
		t := &Transcript{FileID: id, Words: make([]Word, len(tokens))}
		for i, tok := range tokens {
			t.Words[i] = Word{String: tok}
		}
		return t, nil
	}

	words, err := ParseTextGrid(f)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	return &Transcript{
		FileID: strings.TrimSuffix(base, filepath.Ext(base)),
		Timed:  true,
		Words:  words,
	}, nil
}
