// Package response holds the analysis units of one fluency response and the
// normaliser that turns raw tokens into them.
package response

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/speechinformaticslab/vfclust/decoder"
)

// Unit is one analysis token: a word, a compound name ("polar_bear"), or a
// run of adjacent words sharing a stem.
type Unit struct {
	Text string
	// Original lists the constituent words in the order they were merged.
	Original []string
	Start    float64 // sec; only meaningful when the Response is timed
	End      float64
	// TimedIndex points at the first constituent word in the decoded
	// transcript, or -1 for untimed input.
	TimedIndex int
	// Phonetic is the compact phonetic form; set once, letter tasks only.
	Phonetic string
}

// Response is the ordered unit sequence of one input file.
type Response struct {
	FileID string
	Timed  bool
	Units  []Unit
}

// FromTranscript creates one unit per decoded word.
func FromTranscript(t *decoder.Transcript) *Response {
	r := &Response{FileID: t.FileID, Timed: t.Timed, Units: make([]Unit, len(t.Words))}
	for i, w := range t.Words {
		u := Unit{Text: w.String, Original: []string{w.String}, TimedIndex: -1}
		if t.Timed {
			u.Start, u.End, u.TimedIndex = w.Start, w.End, i
		}
		r.Units[i] = u
	}
	return r
}

// FromTokens creates an untimed response.
func FromTokens(fileID string, tokens []string) *Response {
	r := &Response{FileID: fileID, Units: make([]Unit, len(tokens))}
	for i, tok := range tokens {
		tok = strings.ToLower(tok)
		r.Units[i] = Unit{Text: tok, Original: []string{tok}, TimedIndex: -1}
	}
	return r
}

func (r *Response) Len() int { return len(r.Units) }

// Texts returns the canonical text of every unit.
func (r *Response) Texts() []string {
	out := make([]string, len(r.Units))
	for i, u := range r.Units {
		out[i] = u.Text
	}
	return out
}

// with returns a response sharing r's metadata but holding units.
func (r *Response) with(units []Unit) *Response {
	return &Response{FileID: r.FileID, Timed: r.Timed, Units: units}
}

// Table renders the units for debug logging.
func (r *Response) Table() string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Text\tOrig. Text\tStart\tEnd\tPhonetic")
	for _, u := range r.Units {
		start, end := "-", "-"
		if r.Timed {
			start, end = fmt.Sprintf("%.3f", u.Start), fmt.Sprintf("%.3f", u.End)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.Text, strings.Join(u.Original, "/"), start, end, u.Phonetic)
	}
	tw.Flush()
	return b.String()
}
