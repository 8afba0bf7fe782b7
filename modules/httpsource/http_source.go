package httpsource

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// HttpSource issues an HTTP GET against URL on every forward and emits the
// response body's byte length. The client is created in Open and its idle
// connections closed in Close, mirroring the teacher's
// CreateHttpClient/DestroyHttpClient asset pair but scoped to one node
// instance instead of a process-wide shared asset.
type HttpSource struct {
	URL     string
	Timeout time.Duration

	client *http.Client
}

// Open lazily constructs the node's *http.Client.
func (h *HttpSource) Open() error {
	h.client = &http.Client{
		Timeout: h.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return nil
}

// Close releases the client's idle connections.
func (h *HttpSource) Close() error {
	if h.client != nil {
		h.client.CloseIdleConnections()
	}
	return nil
}

// Forward performs one GET against URL and returns the response body's
// length in bytes.
func (h *HttpSource) Forward() (int, error) {
	if h.client == nil {
		return 0, fmt.Errorf("httpsource: node not open")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, h.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("httpsource: building request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("httpsource: request failed: %w", err)
	}
	defer resp.Body.Close()

	n, err := countBody(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("httpsource: reading body: %w", err)
	}
	return n, nil
}

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&HttpSource{}))
	reg.Register("forward", (*HttpSource).Forward)
	reg.Register("Open", (*HttpSource).Open)
	reg.Register("Close", (*HttpSource).Close)

	registry.Register("http_source", []registry.Arg{
		{Name: "url", Default: ""},
		{Name: "timeout_seconds", Default: 10},
	}, func(values []any) (*node.Node, error) {
		return node.New(&HttpSource{
			URL:     values[0].(string),
			Timeout: time.Duration(values[1].(int)) * time.Second,
		}), nil
	})
}
