package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/combinator/config"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("combinator.cli")

type options struct {
	configPath string
	verbose    int
	logFile    string

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "combinator",
		Short:         "Parse documents with parser combinators",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default $"+config.EnvVar+" or ./combinator.toml)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newJSONCmd(opts))
	rootCmd.AddCommand(newEbnfCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

// load reads the configuration, applies flag overrides and sets up logging.
func (o *options) load(cmd *cobra.Command) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.Load(o.configPath)
	} else {
		o.cfg, err = config.Find()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		o.cfg.Log.Verbosity = o.verbose
	}
	if flags.Changed("log-file") {
		o.cfg.Log.File = o.logFile
	}

	var path *string
	if o.cfg.Log.File != "" {
		path = &o.cfg.Log.File
	}
	commonlog.Configure(o.cfg.Log.Verbosity, path)
	log.Debugf("configuration: %+v", *o.cfg)
	return nil
}
