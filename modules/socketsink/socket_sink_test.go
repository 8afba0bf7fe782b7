package socketsink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocketSink_ForwardBeforeOpenFails(t *testing.T) {
	s := &SocketSink{URL: "ws://example.invalid", Event: "message"}
	_, err := s.Forward("payload")
	assert.Error(t, err)
}

func TestSocketSink_OpenRejectsInvalidURL(t *testing.T) {
	s := &SocketSink{URL: "://not a url", Event: "message"}
	err := s.Open()
	assert.Error(t, err)
}

func TestSocketSink_CloseWithoutOpenIsNoop(t *testing.T) {
	s := &SocketSink{}
	assert.NoError(t, s.Close())
}
