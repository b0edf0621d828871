package paging

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Fetcher performs one page request. Implementations must not retry.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, target Target) (Page[T], error)
}

type FetcherFunc[T any] func(ctx context.Context, target Target) (Page[T], error)

func (f FetcherFunc[T]) FetchPage(ctx context.Context, target Target) (Page[T], error) {
	return f(ctx, target)
}

// RawFetcher fetches pages without committing to an element type. A query
// keeps one so its projection can change the element type before execution.
type RawFetcher interface {
	FetchRaw(ctx context.Context, target Target) (RawPage, error)
}

type RawFetcherFunc func(ctx context.Context, target Target) (RawPage, error)

func (f RawFetcherFunc) FetchRaw(ctx context.Context, target Target) (RawPage, error) {
	return f(ctx, target)
}

// Decoding decodes every item of a raw page into T. A page is delivered
// whole or not at all: one bad item fails the page.
func Decoding[T any](raw RawFetcher) Fetcher[T] {
	return FetcherFunc[T](func(ctx context.Context, target Target) (Page[T], error) {
		rawPage, err := raw.FetchRaw(ctx, target)
		if err != nil {
			return Page[T]{}, err
		}
		items := make([]T, len(rawPage.Items))
		for i, item := range rawPage.Items {
			if err := json.Unmarshal(item, &items[i]); err != nil {
				return Page[T]{}, errors.Wrapf(err, "decode item %d of %s", i, target)
			}
		}
		return Page[T]{
			Items:    items,
			Count:    rawPage.Count,
			NextLink: rawPage.NextLink,
		}, nil
	})
}
