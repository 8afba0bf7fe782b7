package socketsink

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// SocketSink holds a persistent socket.io connection and relays every
// packet its forward receives as Event, the same connect-once-emit-many
// shape the teacher splits across modules/socketio_client (connect) and
// modules/socketio (emit), collapsed here into one node's Open/Forward.
type SocketSink struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration

	io *socket.Socket
}

// Open connects to URL and blocks until the connection succeeds, fails,
// or ConnectTimeout elapses.
func (s *SocketSink) Open() error {
	parsed, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("socketsink: parsing url: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	if s.InsecureSkipVerify {
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.Namespace, opts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) { connected <- nil })
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				connected <- err
				return
			}
		}
		connected <- fmt.Errorf("socketsink: connect_error")
	})

	io.Connect()

	timeout := s.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return fmt.Errorf("socketsink: connection failed: %w", err)
		}
	case <-time.After(timeout):
		io.Disconnect()
		return fmt.Errorf("socketsink: timed out after %s waiting for connection", timeout)
	}

	s.io = io
	return nil
}

// Close disconnects the socket.
func (s *SocketSink) Close() error {
	if s.io != nil {
		s.io.Disconnect()
	}
	return nil
}

// Forward emits x as Event over the held connection and passes x through
// unchanged, so the sink can still sit in the middle of a chain.
func (s *SocketSink) Forward(x any) (any, error) {
	if s.io == nil {
		return nil, fmt.Errorf("socketsink: node not open")
	}
	s.io.Emit(s.Event, x)
	return x, nil
}

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&SocketSink{}))
	reg.Register("forward", (*SocketSink).Forward)
	reg.Register("Open", (*SocketSink).Open)
	reg.Register("Close", (*SocketSink).Close)

	registry.Register("socket_sink", []registry.Arg{
		{Name: "url", Default: ""},
		{Name: "namespace", Default: "/"},
		{Name: "event", Default: "message"},
		{Name: "insecure_skip_verify", Default: false},
	}, func(values []any) (*node.Node, error) {
		return node.New(&SocketSink{
			URL:                values[0].(string),
			Namespace:          values[1].(string),
			Event:              values[2].(string),
			InsecureSkipVerify: values[3].(bool),
		}), nil
	})
}
