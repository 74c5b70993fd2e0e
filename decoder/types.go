// Package decoder reads fluency responses from Praat TextGrid (timed) and
// comma-separated (untimed) files.
package decoder

// Phone is one phone-tier interval. String has its stress digits removed.
type Phone struct {
	String string
	Start  float64 // sec
	End    float64 // sec
}

func (p Phone) Duration() float64 { return p.End - p.Start }

// Word is one word-tier interval with the phones that fall inside it.
type Word struct {
	String string // lower-cased
	Start  float64
	End    float64
	Phones []Phone
}

func (w Word) Duration() float64 { return w.End - w.Start }

// Transcript is a decoded response file.
type Transcript struct {
	FileID string
	// Timed is true for TextGrid input; Words then carry timing and phones.
	Timed bool
	Words []Word
}

// Tokens returns the word strings in utterance order.
func (t *Transcript) Tokens() []string {
	out := make([]string, len(t.Words))
	for i, w := range t.Words {
		out[i] = w.String
	}
	return out
}
