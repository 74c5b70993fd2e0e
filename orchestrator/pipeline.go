// Package orchestrator wires decoding, normalisation, collection detection,
// and measure aggregation into a per-response pipeline and a batch runner.
package orchestrator

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/speechinformaticslab/vfclust/clients"
	cfg "github.com/speechinformaticslab/vfclust/config"
	"github.com/speechinformaticslab/vfclust/decoder"
	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/lexicon"
	"github.com/speechinformaticslab/vfclust/measures"
	"github.com/speechinformaticslab/vfclust/morph"
	"github.com/speechinformaticslab/vfclust/response"
	"github.com/speechinformaticslab/vfclust/similarity"
	"github.com/speechinformaticslab/vfclust/task"
)

// Pipeline scores responses for one task. Resources are loaded once and
// shared read-only, so Run may be called concurrently.
type Pipeline struct {
	task       task.Task
	ctypes     []string
	models     []similarity.Model
	thresholds map[string]float64
	norm       *response.Normalizer
	log        *logrus.Entry
}

// NewPipeline validates the task selection against c and loads everything
// the task needs.
func NewPipeline(c *cfg.Root, t task.Task, log *logrus.Entry) (*Pipeline, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	names, err := t.Measures(c.SimilarityMeasures)
	if err != nil {
		return nil, err
	}
	ctypes, err := task.CollectionTypes(c.CollectionTypes)
	if err != nil {
		return nil, err
	}
	th, err := c.SimilarityThresholds()
	if err != nil {
		return nil, err
	}

	res, err := lexicon.Load(c.Paths(), t, slices.Contains(names, task.MeasureLSA))
	if err != nil {
		return nil, err
	}
	log.WithField("task", t.Name()).Debugf("loaded resources")

	stemmer, err := morph.NewStemmer(c.Stemmer)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrConfiguration, "stemmer", err)
	}
	opts := []response.Option{response.WithLogger(log)}
	switch t.Kind {
	case task.Semantic:
		lem, err := morph.NewLemmatizer(res.Category.Lemmas)
		if err != nil {
			return nil, errdefs.Wrap(errdefs.ErrResource, "lemmatizer", err)
		}
		opts = append(opts, response.WithLemmatizer(lem))
	case task.Phonemic:
		tr, err := newTranscriber(c.Transcriber)
		if err != nil {
			return nil, err
		}
		if tr != nil {
			opts = append(opts, response.WithTranscriber(tr))
		}
	}
	norm, err := response.NewNormalizer(t, res, stemmer, opts...)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{task: t, ctypes: ctypes, thresholds: map[string]float64{}, norm: norm, log: log}
	for _, name := range names {
		m, err := similarity.New(name, res)
		if err != nil {
			return nil, err
		}
		if p.thresholds[name], err = th.For(name, t); err != nil {
			return nil, err
		}
		p.models = append(p.models, m)
	}
	return p, nil
}

func newTranscriber(c cfg.Transcriber) (response.Transcriber, error) {
	switch c.Mode {
	case "", "none":
		return nil, nil
	case "t2p":
		return clients.NewT2P(c.Command, c.Tree, c.TimeoutDuration()), nil
	case "http":
		if c.URL == "" {
			return nil, errdefs.Configuration("transcriber", "http mode needs transcriber.url")
		}
		return clients.NewHTTP(c.URL, c.TimeoutDuration()), nil
	}
	return nil, errdefs.Configuration("transcriber", "unknown mode %q (want none, t2p, or http)", c.Mode)
}

func (p *Pipeline) Task() task.Task { return p.task }

// Run decodes and scores the response at path.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	tr, err := decoder.Decode(path)
	if err != nil {
		return nil, err
	}
	res, err := p.Score(ctx, tr)
	if err != nil {
		return nil, err
	}
	res.Source = path
	return res, nil
}

// Score computes every measure of one decoded transcript.
func (p *Pipeline) Score(ctx context.Context, tr *decoder.Transcript) (*Result, error) {
	log := p.log.WithField("file", tr.FileID)
	raw := response.FromTranscript(tr)
	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("raw response:\n%s", raw.Table())
	}

	prepared := p.norm.Prepare(raw)
	m := measures.NewMap()
	labels := measures.Counter{Admissible: p.norm.Admissible, Stem: p.norm.Stem}.Count(m, prepared.Units)
	for _, l := range labels {
		log.Debugf("%-20s %s", l.Word, l.Label)
	}

	cleaned, err := p.norm.Clean(ctx, prepared)
	if err != nil {
		return nil, err
	}

	var words []decoder.Word
	if tr.Timed {
		words = tr.Words
	}
	measures.ResponseTiming(m, words)
	for _, model := range p.models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.scoreModel(log, m, cleaned, words, model); err != nil {
			return nil, err
		}
	}
	return &Result{FileID: tr.FileID, Task: p.task, Measures: m, Labels: labels}, nil
}
