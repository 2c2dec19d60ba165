// Package supervisor accepts agent websocket connections, runs each
// through the registration handshake, and drives it with the configured
// mining strategy until completion, halt, or failure.
package supervisor

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/alexfayers/cc-miner/strategy"
	"github.com/alexfayers/cc-miner/turtle"
)

var upgrader = websocket.Upgrader{}

// snapshotInterval is the status task's poll period; 5Hz is one tick every
// 200ms, so this runs comfortably past that floor.
const snapshotInterval = 150 * time.Millisecond

// Supervisor owns the active set of connected agents and the strategy
// driving all of them.
type Supervisor struct {
	active   *ActiveSet
	strategy strategy.Strategy
}

// New returns a supervisor that drives every registered agent with strat.
func New(strat strategy.Strategy) *Supervisor {
	return &Supervisor{active: NewActiveSet(), strategy: strat}
}

// Routes registers the agent-facing websocket endpoint on r.
func (s *Supervisor) Routes(r *mux.Router) {
	r.HandleFunc("/ws", s.handleConn)
}

func (s *Supervisor) handleConn(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}

	conn := turtle.NewConn(ws)
	defer conn.Close()

	reg, err := conn.ReadRegister()
	if err != nil {
		if sendErr := conn.SendErrorAndClose(err.Error()); sendErr != nil {
			log.Printf("handshake error frame failed: %v", sendErr)
		}
		return
	}

	rec := turtle.NewRecord(reg.ID, conn)
	key := s.active.Insert(rec)
	defer s.active.Remove(key)

	if err := conn.SendData("Registered"); err != nil {
		log.Printf("agent %d: registration ack failed: %v", reg.ID, err)
		return
	}

	runErr := s.strategy.Run(r.Context(), rec)
	switch {
	case runErr == nil:
		log.Printf("agent %d: strategy completed", reg.ID)
	case turtle.IsHalt(runErr):
		log.Printf("agent %d: halted: %v", reg.ID, runErr)
	default:
		log.Printf("agent %d: strategy failed: %v", reg.ID, runErr)
	}

	if err := conn.SendData("Deregistered"); err != nil {
		log.Printf("agent %d: deregistration notice failed: %v", reg.ID, err)
	}
}

// Snapshots reads the current status of every registered agent. It never
// mutates agent state and is safe to call from the status task while
// driver tasks are running.
func (s *Supervisor) Snapshots() []turtle.Snapshot {
	records := s.active.Records()
	out := make([]turtle.Snapshot, len(records))
	for i, rec := range records {
		out[i] = rec.StatusSnapshot()
	}
	return out
}

// RunStatusTask emits Snapshots() on the returned channel at ≥5Hz until ctx
// is done, adapted from root_view's ticker-driven fan-out.
func (s *Supervisor) RunStatusTask(ctx context.Context) <-chan []turtle.Snapshot {
	out := make(chan []turtle.Snapshot)
	ticks := channerics.NewTicker(ctx.Done(), snapshotInterval)

	go func() {
		defer close(out)
		for range ticks {
			select {
			case out <- s.Snapshots():
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
