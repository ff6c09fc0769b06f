package browser

import (
	"sync"
)

// EventBuffer holds the console and network entries captured for one session,
// in arrival order. A single mutex guards both sequences: appends are short
// single-entry pushes and reads copy, so contention is negligible at browser
// event rates.
//
// Capacity limits are FIFO: when a sequence is full the oldest entry is
// silently evicted. A limit of zero or less means unbounded.
type EventBuffer struct {
	mu sync.Mutex

	console    []ConsoleEntry
	maxConsole int

	network    []*NetworkEntry
	byRequest  map[string]*NetworkEntry
	maxNetwork int

	consoleEvicted int64
	networkEvicted int64
}

// NewEventBuffer creates a buffer with the given capacity limits.
func NewEventBuffer(maxConsole, maxNetwork int) *EventBuffer {
	return &EventBuffer{
		maxConsole: maxConsole,
		maxNetwork: maxNetwork,
		byRequest:  make(map[string]*NetworkEntry),
	}
}

// AppendConsole records one console entry.
func (b *EventBuffer) AppendConsole(entry ConsoleEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxConsole > 0 && len(b.console) >= b.maxConsole {
		copy(b.console, b.console[1:])
		b.console = b.console[:len(b.console)-1]
		b.consoleEvicted++
	}
	b.console = append(b.console, entry)
}

// AppendNetwork records a new (pending) network entry, keyed by its request ID
// so the matching response can complete it later.
func (b *EventBuffer) AppendNetwork(entry NetworkEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxNetwork > 0 && len(b.network) >= b.maxNetwork {
		evicted := b.network[0]
		delete(b.byRequest, evicted.RequestID)
		copy(b.network, b.network[1:])
		b.network = b.network[:len(b.network)-1]
		b.networkEvicted++
	}

	stored := entry
	b.network = append(b.network, &stored)
	b.byRequest[stored.RequestID] = &stored
}

// CompleteNetwork transitions the entry with the given request ID from pending
// to completed. Returns false if the request is unknown (never captured, or
// already evicted) or already completed; unmatched responses are dropped, not
// an error.
func (b *EventBuffer) CompleteNetwork(requestID string, resp NetworkResponse) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.byRequest[requestID]
	if !ok || entry.Response != nil {
		return false
	}
	entry.Response = &resp
	return true
}

// SnapshotConsole returns a copy of the console sequence in arrival order.
// If lastN is positive only the most recent lastN entries are returned, still
// oldest first. The returned slice shares nothing mutable with the buffer.
func (b *EventBuffer) SnapshotConsole(lastN int) []ConsoleEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.console
	if lastN > 0 && len(entries) > lastN {
		entries = entries[len(entries)-lastN:]
	}
	out := make([]ConsoleEntry, len(entries))
	copy(out, entries)
	return out
}

// SnapshotNetwork returns a copy of the network sequence in arrival order,
// limited to the most recent lastN entries when lastN is positive. Entry
// values are copied, so a pending->completed transition after the snapshot is
// not visible in the returned slice. Header maps are shared but are never
// mutated after they are set.
func (b *EventBuffer) SnapshotNetwork(lastN int) []NetworkEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.network
	if lastN > 0 && len(entries) > lastN {
		entries = entries[len(entries)-lastN:]
	}
	out := make([]NetworkEntry, len(entries))
	for i, entry := range entries {
		out[i] = *entry
	}
	return out
}

// ConsoleLen returns the number of buffered console entries.
func (b *EventBuffer) ConsoleLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.console)
}

// NetworkLen returns the number of buffered network entries.
func (b *EventBuffer) NetworkLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.network)
}

// Evicted returns how many console and network entries have been dropped to
// capacity limits since the buffer was created.
func (b *EventBuffer) Evicted() (console, network int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consoleEvicted, b.networkEvicted
}

// Clear discards all buffered entries.
func (b *EventBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.console = nil
	b.network = nil
	b.byRequest = make(map[string]*NetworkEntry)
}

// CoalesceConsole collapses adjacent entries with identical severity and text
// into a single entry carrying a repeat count. Order is preserved. The input
// slice is not modified.
func CoalesceConsole(entries []ConsoleEntry) []ConsoleEntry {
	if len(entries) == 0 {
		return nil
	}

	out := make([]ConsoleEntry, 0, len(entries))
	for _, entry := range entries {
		if n := len(out); n > 0 && out[n-1].Severity == entry.Severity && out[n-1].Text == entry.Text {
			if out[n-1].Count == 0 {
				out[n-1].Count = 1
			}
			out[n-1].Count++
			continue
		}
		out = append(out, entry)
	}
	return out
}
