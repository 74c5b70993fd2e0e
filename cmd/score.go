package cmd

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/speechinformaticslab/vfclust/decoder"
	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/orchestrator"
	"github.com/speechinformaticslab/vfclust/task"
)

func newScoreCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [flags] <file|glob>...",
		Short: "Score .csv or .TextGrid responses for a letter or category task",
		Example: `  vfclust score -p f responses/*.TextGrid
  vfclust score -s animals --measures lsa --format json 'data/**/*.csv'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			log := logrus.NewEntry(opts.log)

			t, err := task.New(c.Letter, c.Category, c.Dimensionality)
			if err != nil {
				return err
			}
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			p, err := orchestrator.NewPipeline(c, t, log.WithField("task", t.Name()))
			if err != nil {
				return err
			}
			w, err := orchestrator.NewWriter(c.Output.Dir, c.Output.Format)
			if err != nil {
				return err
			}

			outcomes, err := p.RunBatch(cmd.Context(), paths, c.Workers, w)
			if err != nil {
				return err
			}
			failed := 0
			for _, o := range outcomes {
				if o.Err != nil {
					failed++
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), o.Output)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d responses failed", failed, len(outcomes))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("phonemic", "p", "", "letter task, e.g. f")
	f.StringP("semantic", "s", "", "category task, e.g. animals")
	f.StringP("output", "o", "", "output directory (default: next to each input)")
	f.StringSlice("collection-types", nil, "cluster, chain (default both)")
	f.StringSlice("measures", nil, "similarity measures: phone, biphone, lsa (default all valid for the task)")
	f.Int("dimensionality", 0, "semantic space dimensionality (50-100)")
	f.String("stemmer", "", "porter or porter2")
	f.String("format", "", "csv, json, or yaml")
	f.Int("workers", 0, "responses scored in parallel")
	for key, flag := range map[string]string{
		"letter":              "phonemic",
		"category":            "semantic",
		"output.dir":          "output",
		"collection_types":    "collection-types",
		"similarity_measures": "measures",
		"dimensionality":      "dimensionality",
		"stemmer":             "stemmer",
		"output.format":       "format",
		"workers":             "workers",
	} {
		_ = opts.v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

// expandInputs resolves each argument as a literal file or a doublestar
// glob. Unsupported extensions are kept so they are reported per response.
func expandInputs(args []string) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	for _, arg := range args {
		if !doublestar.ValidatePathPattern(arg) {
			return nil, errdefs.Configuration("inputs", "invalid glob %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errdefs.Wrap(errdefs.ErrConfiguration, "inputs", err)
		}
		if len(matches) == 0 {
			// a plain path that does not exist fails later with a clear error
			add(arg)
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if decoder.Supported(m) || m == arg {
				add(m)
			}
		}
	}
	if len(out) == 0 {
		return nil, errdefs.Configuration("inputs", "no input files")
	}
	return out, nil
}
