package paging

import (
	"context"
	"iter"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/logging"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/option"
)

type State int

const (
	StateNotStarted State = iota
	StateFetching
	StateHasPage
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateFetching:
		return "fetching"
	case StateHasPage:
		return "has-page"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Stream walks the pages of one query. It is meant for a single consumer
// and issues at most one fetch per advance.
type Stream[T any] struct {
	fetcher Fetcher[T]
	initial Target

	id      ulid.ULID
	state   State
	next    Target
	page    Page[T]
	count   option.Option[int64]
	err     error
	fetches int
}

func NewStream[T any](fetcher Fetcher[T], target Target) *Stream[T] {
	s := &Stream[T]{
		fetcher: fetcher,
		initial: target,
	}
	s.Reset()
	return s
}

func FromQuery[T any](fetcher Fetcher[T], query string) *Stream[T] {
	return NewStream(fetcher, QueryTarget(query))
}

func FromFunc[T any](fetch func(ctx context.Context, target Target) (Page[T], error), query string) *Stream[T] {
	return NewStream[T](FetcherFunc[T](fetch), QueryTarget(query))
}

// Reset discards progress; the next advance fetches the initial target again.
func (s *Stream[T]) Reset() {
	s.id = ulid.Make()
	s.state = StateNotStarted
	s.next = s.initial
	s.page = Page[T]{}
	s.count = option.Nothing[int64]()
	s.err = nil
	s.fetches = 0
}

func (s *Stream[T]) ID() ulid.ULID {
	return s.id
}

func (s *Stream[T]) State() State {
	return s.state
}

// Err is the failure that left the stream in StateFailed.
func (s *Stream[T]) Err() error {
	return s.err
}

// Count is the most recent total reported by the service.
func (s *Stream[T]) Count() option.Option[int64] {
	return s.count
}

func (s *Stream[T]) LastPage() option.Option[PageInfo] {
	if s.state == StateNotStarted || s.fetches == 0 {
		return option.Nothing[PageInfo]()
	}
	return option.Some(s.page.Info())
}

// Fetches counts successful page fetches of the current run.
func (s *Stream[T]) Fetches() int {
	return s.fetches
}

// NextPage fetches the next page. It returns false once the previous page had
// no continuation. A failed fetch leaves the target in place, so calling
// NextPage again repeats the same request.
func (s *Stream[T]) NextPage(ctx context.Context) (Page[T], bool, error) {
	switch s.state {
	case StateExhausted:
		return Page[T]{}, false, nil
	case StateFetching:
		return Page[T]{}, false, errors.New("stream is already fetching")
	}

	logger := logging.Ctx(ctx).With().
		Stringer("stream", s.id).
		Stringer("target", s.next).
		Int("fetch", s.fetches+1).
		Logger()

	if err := ctx.Err(); err != nil {
		return s.fail(&FetchError{Target: s.next, Err: err})
	}

	s.state = StateFetching
	logger.Debug().Msg("fetching page")
	page, err := s.fetcher.FetchPage(ctx, s.next)
	if err != nil {
		logger.Debug().Err(err).Msg("page fetch failed")
		return s.fail(&FetchError{Target: s.next, Err: err})
	}

	s.fetches++
	s.page = page
	s.err = nil
	if page.Count.IsSome() {
		s.count = page.Count
	}
	if next, ok := page.NextLink.Get(); ok {
		s.next = ContinuationTarget(next)
		s.state = StateHasPage
	} else {
		s.state = StateExhausted
	}
	logger.Debug().
		Int("items", len(page.Items)).
		Bool("more", page.HasNext()).
		Msg("page fetched")
	return page, true, nil
}

func (s *Stream[T]) fail(err error) (Page[T], bool, error) {
	s.state = StateFailed
	s.err = err
	return Page[T]{}, false, err
}

// Pages yields every page of a fresh run. A used stream is reset first.
// Iteration stops after the first error.
func (s *Stream[T]) Pages(ctx context.Context) iter.Seq2[Page[T], error] {
	return func(yield func(Page[T], error) bool) {
		if s.state != StateNotStarted {
			s.Reset()
		}
		for {
			page, ok, err := s.NextPage(ctx)
			if err != nil {
				yield(Page[T]{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// All yields the items of every page in order. Empty pages with a
// continuation are followed transparently.
func (s *Stream[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for page, err := range s.Pages(ctx) {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Collect drains a fresh run. Items gathered before a failure are returned
// alongside the error.
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for item, err := range s.All(ctx) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
