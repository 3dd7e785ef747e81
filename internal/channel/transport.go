package channel

import (
	"context"

	"github.com/gorilla/websocket"
)

// Conn is a single established push connection.
type Conn interface {
	// ReadMessage blocks for the next message body. It returns an error when
	// the connection is closed, locally or remotely.
	ReadMessage() ([]byte, error)
	Close() error
}

// Transport establishes push connections. The production implementation
// wraps gorilla/websocket; tests substitute their own.
type Transport interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

type wsTransport struct{}

// NewWebSocketTransport returns the websocket-backed Transport.
func NewWebSocketTransport() Transport { return wsTransport{} }

func (wsTransport) Dial(ctx context.Context, url string) (Conn, error) {
	c, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return wsConn{c}, nil
}

type wsConn struct{ c *websocket.Conn }

func (w wsConn) ReadMessage() ([]byte, error) {
	_, data, err := w.c.ReadMessage()
	return data, err
}

func (w wsConn) Close() error { return w.c.Close() }
