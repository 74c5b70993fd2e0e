// Package cmd is the vfclust command tree.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/speechinformaticslab/vfclust/config"
)

type rootOptions struct {
	configFile string
	quiet      bool
	v          *viper.Viper
	log        *logrus.Logger
}

// NewRootCommand builds the command tree around a fresh viper instance.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: cfg.New(), log: logrus.New()}
	root := &cobra.Command{
		Use:           "vfclust",
		Short:         "Score verbal fluency responses by clustering and chaining",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "configuration file (default ./vfclust.yaml or config/$CONFIG_ENV/vfclust.yaml)")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only log warnings and errors")
	root.PersistentFlags().String("log-level", "", "debug, info, warn, or error")
	_ = opts.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newScoreCommand(opts), newConfigCommand(opts))
	return root
}

// load reads the configuration and applies the log level.
func (o *rootOptions) load() (*cfg.Root, error) {
	c, err := cfg.Load(o.v, o.configFile)
	if err != nil {
		return nil, err
	}
	o.log.SetOutput(os.Stderr)
	o.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		lvl = logrus.InfoLevel
		o.log.Warnf("unknown log level %q, using info", c.LogLevel)
	}
	if o.quiet {
		lvl = logrus.WarnLevel
	}
	o.log.SetLevel(lvl)
	return c, nil
}

// Execute runs the command tree and exits non-zero on failure. An interrupt
// cancels responses still in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		logrus.Error(err)
		os.Exit(1)
	}
}
