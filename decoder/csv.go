package decoder

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/speechinformaticslab/vfclust/errdefs"
)

// ParseCSV reads the first record of an untimed response: a file identifier
// followed by the tokens in utterance order. Tokens are lower-cased and have
// all whitespace removed.
func ParseCSV(r io.Reader) (fileID string, tokens []string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rec, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return "", nil, errdefs.Format("csv", "empty response file")
	}
	if err != nil {
		return "", nil, errdefs.Wrap(errdefs.ErrFormat, "csv", err)
	}
	fileID = strings.TrimSpace(strings.ToLower(rec[0]))
	for _, f := range rec[1:] {
		tokens = append(tokens, strings.Join(strings.Fields(strings.ToLower(f)), ""))
	}
	return fileID, tokens, nil
}
