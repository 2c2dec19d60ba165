// Package dashboard serves a read-only, live view of every registered
// agent's status. It never reaches back into an AgentRecord or a
// strategy — it only ever reads the supervisor's published snapshots.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/alexfayers/cc-miner/protocol"
	"github.com/alexfayers/cc-miner/turtle"
)

const (
	writeWait      = time.Second
	pushResolution = 20 * time.Millisecond
	pingResolution = 200 * time.Millisecond
	pongWait       = pingResolution * 4
)

var upgrader = websocket.Upgrader{}

// ErrPongDeadlineExceeded means a dashboard viewer stopped answering pings.
var ErrPongDeadlineExceeded = errors.New("dashboard client disconnect, pong deadline exceeded")

// ErrSockCongestion means too many callers are waiting on the socket.
var ErrSockCongestion = errors.New("dashboard socket op failed due to congestion")

// liveClient pushes one viewer's copy of every agent's status snapshot, at
// a fixed cadence, over its own websocket connection. Adapted from the
// read/ping/publish trio of a generic push client, generalized here from a
// channel-fed update source to polling a pull-style snapshot function,
// since the supervisor's status is a plain read, not a stream.
type liveClient struct {
	source func() []turtle.Snapshot
	sock   *websock
}

func newLiveClient(w http.ResponseWriter, r *http.Request, source func() []turtle.Snapshot) (*liveClient, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &liveClient{source: source, sock: newWebsock(ws)}, nil
}

// serve runs the client until its connection drops or ctx is cancelled.
func (c *liveClient) serve(ctx context.Context) error {
	defer c.sock.close()

	if err := c.sock.write(ctx, func(ws *websocket.Conn) error {
		return ws.WriteJSON(protocol.NewStatus("OK"))
	}); err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return c.readMessages(groupCtx) })
	group.Go(func() error { return c.pingPong(groupCtx) })
	group.Go(func() error { return c.publish(groupCtx) })
	return group.Wait()
}

// readMessages discards anything a viewer sends; the dashboard is
// one-directional, but the pong handler only fires while a read is
// outstanding.
func (c *liveClient) readMessages(ctx context.Context) error {
	for {
		err := c.sock.read(ctx, func(ws *websocket.Conn) error {
			_, _, readErr := ws.ReadMessage()
			return readErr
		})
		if err != nil {
			return err
		}
	}
}

func (c *liveClient) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	c.sock.conn().SetPongHandler(func(string) error {
		pong <- struct{}{}
		return nil
	})

	ticker := time.NewTicker(pingResolution)
	defer ticker.Stop()
	lastPong := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			err := c.sock.write(ctx, func(ws *websocket.Conn) error {
				return ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			})
			if err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (c *liveClient) publish(ctx context.Context) error {
	ticker := time.NewTicker(pushResolution)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snapshots := c.source()
			err := c.sock.write(ctx, func(ws *websocket.Conn) error {
				if writeErr := ws.SetWriteDeadline(time.Now().Add(writeWait)); writeErr != nil {
					return writeErr
				}
				return ws.WriteJSON(renderSnapshots(snapshots))
			})
			if err != nil {
				return err
			}
		}
	}
}

// renderSnapshots converts the supervisor's status into the dashboard's
// wire shape: one text block per agent.
func renderSnapshots(snapshots []turtle.Snapshot) []agentView {
	views := make([]agentView, len(snapshots))
	for i, snap := range snapshots {
		views[i] = agentView{UID: snap.UID, Text: snap.String()}
	}
	return views
}

type agentView struct {
	UID  int    `json:"uid"`
	Text string `json:"text"`
}

const (
	readDeadline  = time.Second
	writeDeadline = time.Second
)

// websock merely serializes reads and writes on a single websocket, which
// may only be operated on by one reader and one writer at a time.
type websock struct {
	readSem  chan struct{}
	writeSem chan struct{}
	ws       *websocket.Conn
}

func newWebsock(ws *websocket.Conn) *websock {
	return &websock{
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
		ws:       ws,
	}
}

func (s *websock) conn() *websocket.Conn {
	return s.ws
}

func (s *websock) close() {
	_ = s.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = s.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.ws.Close()
}

func (s *websock) read(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.readSem <- struct{}{}:
		defer func() { <-s.readSem }()
		return fn(s.ws)
	case <-time.After(readDeadline):
		return ErrSockCongestion
	}
}

func (s *websock) write(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.writeSem <- struct{}{}:
		defer func() { <-s.writeSem }()
		return fn(s.ws)
	case <-time.After(writeDeadline):
		return ErrSockCongestion
	}
}
