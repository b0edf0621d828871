package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/logging"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/query"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/rest"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/table"
)

// ListOptions holds list-specific flags.
type ListOptions struct {
	QueryOptions
	MaxPages int
}

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}
	cmd := &cobra.Command{
		Use:   "list <table>",
		Short: "Stream the items of a table",
		Long: `Run a query against a table and print every matching item, following
continuation links until the last page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, opts, args[0], cmd)
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVar(&opts.MaxPages, "max-pages", 0, "stop after this many pages, 0 for all")
	return cmd
}

func runList(rootOpts *RootOptions, opts *ListOptions, name string, cmd *cobra.Command) error {
	client, err := rest.FromConfig(rootOpts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot create client", err)
	}
	q, err := opts.apply(table.New[Item](table.SourceOf(client), name).Query())
	if err != nil {
		return err
	}
	stream, err := q.ToStream()
	if err != nil {
		return WrapExitError(ExitFailure, "cannot translate query", err)
	}

	ctx := cmd.Context()
	out := rootOpts.formatter(cmd)
	for page, err := range stream.Pages(ctx) {
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("%s error listing %s", query.KindOf(err), name), err)
		}
		for _, item := range page.Items {
			if err := out.PrintLine(item); err != nil {
				return err
			}
		}
		if opts.MaxPages > 0 && stream.Fetches() >= opts.MaxPages {
			break
		}
	}

	event := logging.Ctx(ctx).Info().
		Str("table", name).
		Int("pages", stream.Fetches())
	if count, ok := stream.Count().Get(); ok {
		event = event.Int64("count", count)
	}
	event.Msg("listed")
	return nil
}
