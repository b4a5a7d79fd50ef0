// Package drift implements the clock-drift feedback loop: the server
// watches how far ahead or behind each client's batches arrive
// relative to the tick it is about to schedule, and stamps a small
// signed correction the client applies by skipping or extending its
// end-of-frame sleep. An iteration counter on both sides makes the
// handshake idempotent: a correction is applied at most once per
// round trip no matter how many batches repeat it.
package drift

import "math"

// ServerSide tracks one connected peer's drift-correction handshake
// state on the server.
type ServerSide struct {
	lastSentIteration uint8
	hasSent           bool
}

// NewServerSide starts a peer with no correction outstanding.
func NewServerSide() *ServerSide {
	return &ServerSide{}
}

// Observe computes the tick diff for an incoming batch and decides
// whether to stamp a new correction. w is the valid-tick window width.
// clientAckedIteration is the adjustment_iteration the client echoed
// back in this batch's header, i.e. the iteration the client currently
// holds. A correction is stamped with that iteration, so the client's
// Consume accepts it and moves one past it. The server only issues a
// new correction once the client has acknowledged the last one it sent
// (clientAckedIteration == lastSentIteration+1); otherwise a correction
// is already in flight and stacking a second one would overcorrect.
func (s *ServerSide) Observe(serverSimTick, clientSimTick uint64, w int, clientAckedIteration uint8) (adjustment int8, iteration uint8, stamp bool) {
	if s.hasSent && clientAckedIteration != s.lastSentIteration+1 {
		return 0, s.lastSentIteration, false
	}

	diff := int64(serverSimTick) + int64(w) - 1 - int64(clientSimTick)
	if diff >= -(int64(w) - 1) && diff <= 0 {
		return 0, s.lastSentIteration, false
	}

	adjustment = clampToInt8(diff)
	s.lastSentIteration = clientAckedIteration
	s.hasSent = true
	return adjustment, s.lastSentIteration, true
}

func clampToInt8(v int64) int8 {
	if v > math.MaxInt8 {
		return math.MaxInt8
	}
	if v < math.MinInt8 {
		return math.MinInt8
	}
	return int8(v)
}

// ClientSide tracks the local client's half of the handshake: its
// current acknowledged iteration and any outstanding skip/extend
// obligations from the last consumed correction.
type ClientSide struct {
	iteration  uint8
	skipFrames int
	extraSleep int
}

// NewClientSide starts a client at iteration 0 (matches a fresh peer's
// ServerSide, which has sent nothing yet).
func NewClientSide() *ClientSide {
	return &ClientSide{}
}

// Iteration returns the iteration value the client should echo back
// in its next outgoing batch header.
func (c *ClientSide) Iteration() uint8 { return c.iteration }

// Consume applies a correction received in a batch, if its iteration
// matches what this client currently holds and the adjustment is
// nonzero. adjustment > 0 means the client is behind the server and
// should skip its end-of-frame sleep for the next `adjustment` frames
// ("fast-forward"); adjustment < 0 means the client is ahead and
// should sleep an extra frame that many times. Either direction bumps
// the client's iteration, acknowledging the correction so a repeated
// batch carrying the same iteration is a no-op.
func (c *ClientSide) Consume(adjustment int8, iteration uint8) {
	if adjustment == 0 || iteration != c.iteration {
		return
	}
	if adjustment > 0 {
		c.skipFrames += int(adjustment)
	} else {
		c.extraSleep += int(-adjustment)
	}
	c.iteration++
}

// ShouldSkipSleep reports whether the current frame's end-of-frame
// sleep should be skipped, consuming one unit of outstanding
// fast-forward obligation if so.
func (c *ClientSide) ShouldSkipSleep() bool {
	if c.skipFrames > 0 {
		c.skipFrames--
		return true
	}
	return false
}

// ExtraSleepFrame reports and consumes one unit of outstanding
// extra-sleep obligation, returning true if this frame should insert
// an additional sleep beyond its normal budget.
func (c *ClientSide) ExtraSleepFrame() bool {
	if c.extraSleep > 0 {
		c.extraSleep--
		return true
	}
	return false
}
