package rest

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/option"
)

const requestIDHeader = "X-Request-ID"

var hostname string

func init() {
	hostname, _ = os.Hostname()
}

// observableTransport announces every round trip on the client's signals.
type observableTransport struct {
	base   http.RoundTripper
	client *Client
}

func (t *observableTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestView := &RequestView{
		ID:        req.Header.Get(requestIDHeader),
		TimeStart: time.Now(),
		Label: fmt.Sprintf(
			"datasync.%s.%s.%s.%s",
			hostname, req.Method, req.URL.Host, req.URL.Path,
		),
	}
	t.client.onRequestStarted.Notify(RequestStartedEvent{
		Client:      t.client,
		RequestView: requestView,
	})

	resp, err := t.base.RoundTrip(req)

	requestView.ResponseTime = option.Some(time.Since(requestView.TimeStart))
	if resp != nil {
		requestView.Status = option.Some(resp.StatusCode)
	}
	t.client.onRequestEnded.Notify(RequestEndedEvent{
		Client:      t.client,
		RequestView: requestView,
		Err:         err,
	})

	return resp, err
}
