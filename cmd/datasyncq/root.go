package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/config"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Endpoint   string
	LogLevel   string
	Format     string // "text" | "json" | "yaml"

	Config config.Config
}

var ValidFormats = []string{"text", "json", "yaml"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "datasyncq",
		Short: "Query datasync tables",
		Long: `Build the query string of a datasync table query, or run the query
and stream every matching item across all result pages.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "service base URI, overrides the config")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level, overrides the config")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := config.Load(config.DefaultPrefix, o.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.Endpoint != "" {
		cfg.Endpoint = o.Endpoint
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	o.Config = cfg

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid log settings", err)
	}
	logging.SetGlobalLogger(logger)
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}
