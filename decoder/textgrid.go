package decoder

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/speechinformaticslab/vfclust/errdefs"
)

var (
	reItem     = regexp.MustCompile(`^item\s*\[(\d+)\]\s*:`)
	reInterval = regexp.MustCompile(`^intervals\s*\[(\d+)\]\s*:`)
	reBound    = regexp.MustCompile(`^(xmin|xmax)\s*=\s*([-+0-9.eE]+)`)
	reText     = regexp.MustCompile(`^text\s*=\s*"(.*)"\s*$`)
	reDigits   = regexp.MustCompile(`\d+`)
)

type interval struct {
	label      string
	start, end float64
	hasStart   bool
	hasEnd     bool
	hasLabel   bool
}

// ParseTextGrid reads a long-format TextGrid whose first tier holds words
// and second tier holds phones. Phones are attached to the word whose bounds
// contain them.
func ParseTextGrid(r io.Reader) ([]Word, error) {
	tiers := map[int][]interval{}
	item := 0
	var cur *interval

	flush := func() error {
		if cur == nil {
			return nil
		}
		if !cur.hasStart || !cur.hasEnd || !cur.hasLabel {
			return errdefs.Format("textgrid", "incomplete interval in tier %d", item)
		}
		tiers[item] = append(tiers[item], *cur)
		cur = nil
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		switch {
		case reItem.MatchString(line):
			if err := flush(); err != nil {
				return nil, err
			}
			item, _ = strconv.Atoi(reItem.FindStringSubmatch(line)[1])
		case reInterval.MatchString(line):
			if err := flush(); err != nil {
				return nil, err
			}
			if item == 0 {
				return nil, errdefs.Format("textgrid", "line %d: interval outside of a tier", lineNum)
			}
			cur = &interval{}
		case cur != nil && reBound.MatchString(line):
			m := reBound.FindStringSubmatch(line)
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return nil, errdefs.Format("textgrid", "line %d: bad %s %q", lineNum, m[1], m[2])
			}
			if m[1] == "xmin" {
				cur.start, cur.hasStart = v, true
			} else {
				cur.end, cur.hasEnd = v, true
			}
		case cur != nil && reText.MatchString(line):
			cur.label = strings.ReplaceAll(reText.FindStringSubmatch(line)[1], `""`, `"`)
			cur.hasLabel = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errdefs.Wrap(errdefs.ErrFormat, "textgrid", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	wordTier, ok1 := tiers[1]
	phoneTier, ok2 := tiers[2]
	if !ok1 || !ok2 {
		return nil, errdefs.Format("textgrid", "expected a word tier (item [1]) and a phone tier (item [2])")
	}

	phones := make([]Phone, 0, len(phoneTier))
	for _, iv := range phoneTier {
		phones = append(phones, Phone{
			String: reDigits.ReplaceAllString(iv.label, ""),
			Start:  iv.start,
			End:    iv.end,
		})
	}

	words := make([]Word, 0, len(wordTier))
	for _, iv := range wordTier {
		w := Word{String: strings.ToLower(iv.label), Start: iv.start, End: iv.end}
		for _, p := range phones {
			if p.Start >= w.Start && p.End <= w.End {
				w.Phones = append(w.Phones, p)
			}
		}
		words = append(words, w)
	}
	return words, nil
}
