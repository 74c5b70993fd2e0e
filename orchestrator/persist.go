package orchestrator

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/measures"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Writer persists results next to their input, or under Dir when set.
type Writer struct {
	Dir    string
	Format string
}

func NewWriter(dir, format string) (*Writer, error) {
	format = strings.ToLower(format)
	switch format {
	case "":
		format = FormatCSV
	case FormatCSV, FormatJSON, FormatYAML:
	default:
		return nil, errdefs.Configuration("output", "unknown format %q (want csv, json, or yaml)", format)
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Writer{Dir: dir, Format: format}, nil
}

// Path is <dir>/<input base>_vfclust_<task name>.<format>.
func (w *Writer) Path(res *Result) string {
	dir := w.Dir
	if dir == "" {
		dir = filepath.Dir(res.Source)
	}
	base := filepath.Base(res.Source)
	if base == "." || base == string(filepath.Separator) {
		base = res.FileID
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"_vfclust_"+res.Task.Name()+"."+w.Format)
}

// Write stores res and returns the file it wrote.
func (w *Writer) Write(res *Result) (string, error) {
	path := w.Path(res)
	var err error
	switch w.Format {
	case FormatJSON:
		err = writeJSON(path, bundle(res))
	case FormatYAML:
		err = writeYAML(path, bundle(res))
	default:
		err = writeCSV(path, res)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// PersistBundle is the JSON/YAML document for one response.
type PersistBundle struct {
	FileID   string        `json:"file_id" yaml:"file_id"`
	Task     string        `json:"task" yaml:"task"`
	Measures *measures.Map `json:"measures" yaml:"measures"`
}

func bundle(res *Result) PersistBundle {
	return PersistBundle{FileID: res.FileID, Task: res.Task.Name(), Measures: res.Measures}
}

// CSVRecord returns the header and the single data row. Measure columns are
// prefixed with the task kind and grouped COUNT, COLLECTION, TIMING.
func CSVRecord(res *Result) (header, row []string) {
	keys := res.Measures.Ordered()
	header = make([]string, 0, len(keys)+1)
	row = make([]string, 0, len(keys)+1)
	header = append(header, "file_id")
	row = append(row, res.FileID)
	prefix := res.Task.Kind.String() + "_"
	for _, k := range keys {
		v, _ := res.Measures.Get(k)
		header = append(header, prefix+k)
		row = append(row, v.String())
	}
	return header, row
}

func writeCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	header, row := CSVRecord(res)
	cw := csv.NewWriter(f)
	if err := cw.WriteAll([][]string{header, row}); err != nil {
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
