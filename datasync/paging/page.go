package paging

import (
	"encoding/json"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/option"
)

// Page is one service response. Count is the total across all pages when
// the query asked for it. NextLink is absent on the last page.
type Page[T any] struct {
	Items    []T                         `json:"items"`
	Count    option.Option[int64]        `json:"count"`
	NextLink option.Option[Continuation] `json:"nextLink"`
}

// RawPage carries undecoded items so the element type can be chosen late.
type RawPage = Page[json.RawMessage]

// UnmarshalJSON treats an empty nextLink like a missing one.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var decoded pageFields[T]
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if c, ok := decoded.NextLink.Get(); ok && c.IsZero() {
		decoded.NextLink = option.Nothing[Continuation]()
	}
	*p = Page[T](decoded)
	return nil
}

func (p Page[T]) HasNext() bool {
	return p.NextLink.IsSome()
}

func (p Page[T]) Info() PageInfo {
	return PageInfo{
		ItemCount: len(p.Items),
		Count:     p.Count,
		NextLink:  p.NextLink,
	}
}

type pageFields[T any] Page[T]

// PageInfo is the metadata of a page without its items.
type PageInfo struct {
	ItemCount int
	Count     option.Option[int64]
	NextLink  option.Option[Continuation]
}
