package main

import (
	"strings"

	"github.com/spf13/cobra"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain/odata"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/query"
)

// Item is an element of a table whose shape is not known in advance.
type Item = map[string]any

// QueryOptions holds the clause flags shared by build and list.
type QueryOptions struct {
	Filter         string
	OrderBy        string
	Select         string
	Skip           int
	Top            int
	Count          bool
	IncludeDeleted bool
	Params         map[string]string
}

func (o *QueryOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Filter, "filter", "", `filter expression, e.g. "year gt 1990 and endswith(title,'er')"`)
	cmd.Flags().StringVar(&o.OrderBy, "orderby", "", `order keys, e.g. "year desc,title"`)
	cmd.Flags().StringVar(&o.Select, "select", "", `returned fields, e.g. "id,title"`)
	cmd.Flags().IntVar(&o.Skip, "skip", 0, "items to skip")
	cmd.Flags().IntVar(&o.Top, "top", 0, "maximum number of items, 0 for no limit")
	cmd.Flags().BoolVar(&o.Count, "count", false, "request the total count")
	cmd.Flags().BoolVar(&o.IncludeDeleted, "include-deleted", false, "include soft-deleted items")
	cmd.Flags().StringToStringVar(&o.Params, "param", nil, "custom parameter key=value, repeatable")
}

// apply adds the flag clauses to q. Field names are service names.
func (o *QueryOptions) apply(q query.Spec[Item]) (query.Spec[Item], error) {
	var err error
	if strings.TrimSpace(o.Filter) != "" {
		predicate, err := odata.ParseFilter(o.Filter)
		if err != nil {
			return q, WrapExitError(ExitCommandError, "invalid --filter", err)
		}
		q = q.Where(predicate)
	}
	if strings.TrimSpace(o.OrderBy) != "" {
		items, err := odata.ParseOrderBy(o.OrderBy)
		if err != nil {
			return q, WrapExitError(ExitCommandError, "invalid --orderby", err)
		}
		for _, item := range items {
			key := e.Field(item.Field)
			if item.Descending {
				q = q.ThenByDescending(key)
			} else {
				q = q.ThenBy(key)
			}
		}
	}
	if strings.TrimSpace(o.Select) != "" {
		fields, err := odata.ParseSelect(o.Select)
		if err != nil {
			return q, WrapExitError(ExitCommandError, "invalid --select", err)
		}
		projection := make([]e.Visitable, 0, len(fields))
		for _, field := range fields {
			projection = append(projection, e.Field(field))
		}
		q = query.Select[Item](q, projection...)
	}
	if o.Skip != 0 {
		if q, err = q.Skip(o.Skip); err != nil {
			return q, WrapExitError(ExitCommandError, "invalid --skip", err)
		}
	}
	if o.Top != 0 {
		if q, err = q.Take(o.Top); err != nil {
			return q, WrapExitError(ExitCommandError, "invalid --top", err)
		}
	}
	if len(o.Params) > 0 {
		if q, err = q.WithParameters(o.Params); err != nil {
			return q, WrapExitError(ExitCommandError, "invalid --param", err)
		}
	}
	return q.IncludeTotalCount(o.Count).IncludeDeletedItems(o.IncludeDeleted), nil
}
