package rest

import (
	"strconv"
	"time"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/option"
)

// RequestView describes one HTTP exchange. The transport fills Status and
// ResponseTime when the exchange ends.
type RequestView struct {
	ID           string
	TimeStart    time.Time
	Label        string
	Status       option.Option[int]
	ResponseTime option.Option[time.Duration]
}

func (r RequestView) String() string {
	if status, ok := r.Status.Get(); ok {
		return r.Label + "." + strconv.Itoa(status)
	}
	return r.Label
}

type RequestStartedEvent struct {
	Client      *Client
	RequestView *RequestView
}

type RequestEndedEvent struct {
	Client      *Client
	RequestView *RequestView
	Err         error
}
