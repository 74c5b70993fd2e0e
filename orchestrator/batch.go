package orchestrator

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/speechinformaticslab/vfclust/errdefs"
)

// RunBatch scores paths with at most workers responses in flight. A failing
// response is logged and recorded in its Outcome without stopping the
// others; only context cancellation ends the batch early. When w is non-nil
// every result is written as soon as it is ready. Outcomes keep input order.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, workers int, w *Writer) ([]Outcome, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			o := &out[i]
			o.Source = path
			log := p.log.WithField("file", path)

			res, err := p.Run(gctx, path)
			if err == nil && w != nil {
				o.Output, err = w.Write(res)
			}
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				o.Err = err
				log.WithFields(logrus.Fields{"code": errdefs.Classify(err)}).Errorf("response failed: %v", err)
				return nil
			}
			o.Result = res
			log.WithField("output", o.Output).Infof("scored %s", res.FileID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}
