// Package browser implements the session-scoped browser event aggregator:
// it opens a Playwright-driven browser page, attaches listeners to its
// console and network event streams, buffers the observed events in an
// in-memory queryable structure, and serves ordered snapshots to the tool
// layer.
//
// # Architecture
//
// Four pieces cooperate, leaf first:
//
//  1. EventBuffer: ordered, optionally capped log of console and network
//     entries with snapshot-on-read queries.
//  2. Session: state machine (closed/opening/open/closing) owning one
//     browser, one page, and one EventBuffer.
//  3. ListenerBridge: the subscription handle translating raw engine
//     callbacks into buffer entries, with request/response correlation.
//  4. Monitor: the facade holding the Playwright driver and the single
//     swappable session reference; the tool layer calls only this.
//
// # Concurrency
//
// Tool operations arrive one at a time from the protocol layer, but engine
// event callbacks fire on playwright-go's dispatch goroutines and interleave
// with in-flight tool calls. The buffer's mutex covers that interleaving:
// appends are single-entry pushes and queries copy before returning, so a
// snapshot handed to the serializer never races with a new event.
//
// # Session policy
//
// Exactly one session is live at a time. Opening while already open performs
// an in-place navigation and preserves captured history; close is idempotent
// and never fails. A failed open tears down any partially acquired resources
// before returning, so the session is never left half-open.
package browser
