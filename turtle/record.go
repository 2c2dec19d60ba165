package turtle

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/alexfayers/cc-miner/protocol"
)

// Exchanger is the transport Record drives commands over. Conn implements
// it; tests substitute a stub to drive the primitives and planner without a
// real websocket connection in tests.
type Exchanger interface {
	Exchange(ctx context.Context, snippet string) (protocol.Response, error)
}

// slotRange is the full set of usable inventory slots.
var slotRange = func() []int {
	s := make([]int, 16)
	for i := range s {
		s[i] = i + 1
	}
	return s
}()

// BadBlocks are dropped during a stripmine branch's inventory purge.
var BadBlocks = []string{"cobble", "dirt", "gravel"}

// fuelBlocks are tried, in order, during Refuel.
var fuelBlocks = []string{"coal"}

// FuelLimit is the ceiling past which Refuel always succeeds regardless of
// target.
const FuelLimit = 20000

// Record is the controller's exclusively-owned belief and behavior state
// for one connected agent. It is owned solely
// by its driver task; the status task only ever reads it through
// StatusSnapshot, which takes the same mutex so reads never tear.
type Record struct {
	UID  int
	conn Exchanger

	mu            sync.Mutex
	pose          Pose
	home          Location
	checkFuel     bool
	latestFuel    int
	latestCommand string
	stepsFromHome int
	lightLevel    int
	hasLightLevel bool
}

// NewRecord initializes a record at the origin, facing north, with the
// fuel guard enabled.
func NewRecord(uid int, conn Exchanger) *Record {
	return &Record{
		UID:       uid,
		conn:      conn,
		pose:      Pose{Location: Location{}, Bearing: North},
		home:      Location{},
		checkFuel: true,
	}
}

// Pose returns the current belief pose.
func (r *Record) Pose() Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pose
}

func (r *Record) setPose(p Pose) {
	r.mu.Lock()
	r.pose = p
	r.mu.Unlock()
}

// Home returns the location a strategy wants to return to.
func (r *Record) Home() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.home
}

// SetHome advances home, e.g. when a stripmine branch snapshots its trunk
// position. Strategies only ever advance it to the current pose.
func (r *Record) SetHome(loc Location) {
	r.mu.Lock()
	r.home = loc
	r.mu.Unlock()
}

// CheckFuelEnabled reports whether the fuel guard runs before each move.
func (r *Record) CheckFuelEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checkFuel
}

// SetCheckFuel enables or disables the fuel guard; disabled during the
// final return so the return plan itself cannot recurse into the guard.
func (r *Record) SetCheckFuel(enabled bool) {
	r.mu.Lock()
	r.checkFuel = enabled
	r.mu.Unlock()
}

// SetLightLevel records the stripmine strategy's current torch-light
// countdown, surfaced in the status snapshot.
func (r *Record) SetLightLevel(level int) {
	r.mu.Lock()
	r.lightLevel = level
	r.hasLightLevel = true
	r.mu.Unlock()
}

func (r *Record) stampCommand(snippet, outcome string) {
	r.mu.Lock()
	r.latestCommand = snippet + " (" + outcome + ")"
	r.mu.Unlock()
}

func (r *Record) setLatestFuel(fuel int) {
	r.mu.Lock()
	r.latestFuel = fuel
	r.mu.Unlock()
}

func (r *Record) setStepsFromHome(steps int) {
	r.mu.Lock()
	r.stepsFromHome = steps
	r.mu.Unlock()
}

// SendCommand is the controller's single low-level operation against an
// agent. snippet must contain "return" or the call fails
// immediately without sending a frame.
func (r *Record) SendCommand(ctx context.Context, snippet string) (protocol.Response, error) {
	if !strings.Contains(snippet, "return") {
		return protocol.Response{}, wrapf(ErrCommandMalformed, "snippet %q must contain \"return\"", snippet)
	}

	r.stampCommand(snippet, "PENDING")

	resp, err := r.conn.Exchange(ctx, snippet)
	if err != nil {
		return protocol.Response{}, err
	}

	if resp.Status {
		r.stampCommand(snippet, "SUCCESS")
	} else {
		r.stampCommand(snippet, "FAILURE")
	}
	return resp, nil
}

// Snapshot is the human-readable, read-only status line for one agent.
type Snapshot struct {
	UID           int
	Location      Location
	Fuel          int
	LatestCommand string
	StepsFromHome int
	LightLevel    int
	HasLightLevel bool
}

// StatusSnapshot is a pure read of the record's fields; it never mutates
// state and must not block the driver task for long.
func (r *Record) StatusSnapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		UID:           r.UID,
		Location:      r.pose.Location,
		Fuel:          r.latestFuel,
		LatestCommand: r.latestCommand,
		StepsFromHome: r.stepsFromHome,
		LightLevel:    r.lightLevel,
		HasLightLevel: r.hasLightLevel,
	}
}

// String renders the snapshot in the dashboard's plain-text format.
func (s Snapshot) String() string {
	out := "Position:        " + s.Location.String() + "\n" +
		"Fuel:            " + strconv.Itoa(s.Fuel) + "\n" +
		"Latest Command:  " + s.LatestCommand + "\n" +
		"Blocks from Home: " + strconv.Itoa(s.StepsFromHome) + "\n"
	if s.HasLightLevel {
		out += "Light Level:     " + strconv.Itoa(s.LightLevel) + "\n"
	}
	return out
}
