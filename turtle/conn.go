package turtle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alexfayers/cc-miner/protocol"
)

// writeWait bounds how long a single frame write may block.
const writeWait = 5 * time.Second

// Conn wraps a websocket connection to a single agent. Exchange owns the
// full write-then-await-one-reply round trip under one critical section,
// so a connection can never have two commands in flight even if called
// concurrently by mistake — the single-outstanding-command invariant of
// Adapted from a generic request/response websock type
// (server/fastview/client.go), generalized from its read-discard,
// publish-only model to a true half-duplex request/response.
type Conn struct {
	ws  *websocket.Conn
	sem chan struct{}
}

// NewConn wraps an already-upgraded websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ws:  ws,
		sem: make(chan struct{}, 1),
	}
}

// Close closes the underlying websocket.
func (c *Conn) Close() error {
	return c.ws.Close()
}

// ReadRegister awaits the connection's mandatory first frame and parses it
// as a Register message. Any other frame, parse failure, or missing type
// discriminator is an error.
func (c *Conn) ReadRegister() (protocol.Register, error) {
	_, payload, err := c.ws.ReadMessage()
	if err != nil {
		return protocol.Register{}, err
	}

	msg, err := protocol.Decode(payload)
	if err != nil {
		return protocol.Register{}, fmt.Errorf("could not parse: %s", string(payload))
	}

	reg, ok := msg.(protocol.Register)
	if !ok {
		return protocol.Register{}, fmt.Errorf("could not parse: %s", string(payload))
	}
	return reg, nil
}

// SendData sends a data acknowledgement frame.
func (c *Conn) SendData(message string) error {
	return c.writeJSON(protocol.NewData(message))
}

// SendErrorAndClose sends an error frame and closes the connection, per
// the registration handshake's failure path.
func (c *Conn) SendErrorAndClose(message string) error {
	writeErr := c.writeJSON(protocol.NewError(message))
	closeErr := c.ws.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

// Exchange sends a command frame and awaits exactly one reply frame. It
// does not interpret the reply's status — callers classify outcomes — it
// only enforces that a response actually arrives and parses as one.
// There is no built-in command timeout: a hung agent hangs
// this call, and thus its owning driver task, but no other agent's.
func (c *Conn) Exchange(ctx context.Context, snippet string) (protocol.Response, error) {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return protocol.Response{}, ctx.Err()
	}

	if err := c.writeJSON(protocol.NewCommand(snippet)); err != nil {
		return protocol.Response{}, wrapf(ErrCommandProtocol, "send command: %v", err)
	}

	_, payload, err := c.ws.ReadMessage()
	if err != nil {
		return protocol.Response{}, wrapf(ErrCommandProtocol, "read response: %v", err)
	}

	msg, err := protocol.Decode(payload)
	if err != nil {
		return protocol.Response{}, wrapf(ErrCommandProtocol, "could not parse: %s", string(payload))
	}

	resp, ok := msg.(protocol.Response)
	if !ok {
		return protocol.Response{}, wrapf(ErrCommandProtocol, "expected response frame, got %T", msg)
	}
	return resp, nil
}

func (c *Conn) writeJSON(v interface{}) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}
