package supervisor

import (
	"sync"
	"sync/atomic"

	"github.com/alexfayers/cc-miner/turtle"
)

// ActiveSet is the process-wide table of currently connected agents, keyed
// by connection identity rather than the agent-declared uid — duplicate
// uids are permitted but discouraged. It is mutated only by Insert/Remove;
// Records tolerates concurrent mutation by copying references out under
// the lock and reading each record afterward.
type ActiveSet struct {
	mu      sync.Mutex
	records map[int64]*turtle.Record
	nextKey int64
}

// NewActiveSet returns an empty active set.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{records: make(map[int64]*turtle.Record)}
}

// Insert adds rec under a freshly minted identity key and returns it for a
// matching Remove.
func (a *ActiveSet) Insert(rec *turtle.Record) int64 {
	key := atomic.AddInt64(&a.nextKey, 1)
	a.mu.Lock()
	a.records[key] = rec
	a.mu.Unlock()
	return key
}

// Remove drops the record at key, if still present.
func (a *ActiveSet) Remove(key int64) {
	a.mu.Lock()
	delete(a.records, key)
	a.mu.Unlock()
}

// Records copies out the currently registered records.
func (a *ActiveSet) Records() []*turtle.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*turtle.Record, 0, len(a.records))
	for _, rec := range a.records {
		out = append(out, rec)
	}
	return out
}

// Len reports the number of currently registered agents.
func (a *ActiveSet) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}
