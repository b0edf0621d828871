package paging

import (
	"encoding/json"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/option"
)

// Continuation is the opaque reference to the next page. It is used verbatim
// and never parsed, rebuilt or merged with the original query.
type Continuation struct {
	uri string
}

func NewContinuation(uri string) Continuation {
	return Continuation{uri: uri}
}

func (c Continuation) String() string {
	return c.uri
}

func (c Continuation) IsZero() bool {
	return c.uri == ""
}

func (c Continuation) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.uri)
}

func (c *Continuation) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.uri)
}

// Target is what a single fetch asks for: the initial query string, or a
// continuation returned by the previous page.
type Target struct {
	query        string
	continuation option.Option[Continuation]
}

func QueryTarget(query string) Target {
	return Target{query: query}
}

func ContinuationTarget(c Continuation) Target {
	return Target{continuation: option.Some(c)}
}

// Query is empty for continuation targets.
func (t Target) Query() string {
	return t.query
}

func (t Target) Continuation() (Continuation, bool) {
	return t.continuation.Get()
}

func (t Target) IsContinuation() bool {
	return t.continuation.IsSome()
}

func (t Target) String() string {
	if c, ok := t.continuation.Get(); ok {
		return c.String()
	}
	if t.query == "" {
		return "?"
	}
	return "?" + t.query
}
