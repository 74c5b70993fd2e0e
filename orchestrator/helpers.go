package orchestrator

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/speechinformaticslab/vfclust/collection"
	"github.com/speechinformaticslab/vfclust/decoder"
	"github.com/speechinformaticslab/vfclust/measures"
	"github.com/speechinformaticslab/vfclust/response"
	"github.com/speechinformaticslab/vfclust/similarity"
)

// scoreModel writes the pairwise mean and, per collection type, the shape
// and timing measures of one similarity model.
func (p *Pipeline) scoreModel(log *logrus.Entry, m *measures.Map, r *response.Response, words []decoder.Word, model similarity.Model) error {
	name := model.Name()
	log = log.WithField("measure", name)

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		adj, err := similarity.Adjacent(r.Units, model)
		if err != nil {
			return err
		}
		log.Debugf("adjacent scores:\n%s", adjacentTable(r.Units, adj))
	}

	pm, err := measures.PairwiseMean(r.Units, model)
	if err != nil {
		return err
	}
	m.Set(measures.PairwiseKey(name), pm)

	for _, ctype := range p.ctypes {
		det, err := collection.NewDetector(ctype, model, p.thresholds[name])
		if err != nil {
			return err
		}
		cs, err := det.Detect(r.Units)
		if err != nil {
			return err
		}
		if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
			log.WithField("collection_type", ctype).Debugf("%d collections:\n%s", len(cs), collection.Table(r.Units, cs))
		}
		measures.CollectionShape(m, name, ctype, r.Len(), cs)
		measures.CollectionTiming(m, name, ctype, r, words, cs)
	}
	return nil
}

func adjacentTable(units []response.Unit, scores []float64) string {
	var b strings.Builder
	for i, s := range scores {
		b.WriteString(units[i].Text)
		b.WriteString(" -> ")
		b.WriteString(units[i+1].Text)
		b.WriteString(": ")
		b.WriteString(measures.Num(s).String())
		b.WriteByte('\n')
	}
	return b.String()
}
