package main

import (
	"github.com/spf13/cobra"

	infra "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/infrastructure"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/query"
)

// BuildResult is the structured output of build.
type BuildResult struct {
	Query string `json:"query" yaml:"query"`
}

func (r BuildResult) String() string {
	return r.Query
}

func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the query string for the given clauses",
		Long: `Print the canonical query string for the given clauses without contacting
the service. Field names are used as given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(rootOpts, opts, cmd)
		},
	}
	opts.register(cmd)
	return cmd
}

func runBuild(rootOpts *RootOptions, opts *QueryOptions, cmd *cobra.Command) error {
	q, err := opts.apply(query.New[Item]("", infra.OpenSchema("item"), nil))
	if err != nil {
		return err
	}
	qs, err := q.ToQueryString()
	if err != nil {
		return WrapExitError(ExitFailure, "cannot translate query", err)
	}
	return rootOpts.formatter(cmd).Print(BuildResult{Query: qs})
}
