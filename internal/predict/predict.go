// Package predict implements client-side prediction and server
// reconciliation: the client advances its own player locally every
// tick using the same deterministic step the server runs, then on
// receiving an Auth packet for a past tick, rewinds to the server's
// authoritative record and replays every input since.
package predict

import (
	"log"

	"tickarena/internal/sim"
)

// InputLogLength is the input ring's fixed capacity, indexed directly
// by sim_tick modulo this length rather than as a FIFO: a tick's input
// always lives at the same slot, so reconciliation can jump straight
// to any past tick's input without scanning.
const InputLogLength = 256

// inputLogEntry stamps a captured input with the tick it was captured
// for, so a stale slot (the ring has wrapped since) can be told apart
// from a genuine miss.
type inputLogEntry struct {
	simTick uint64
	input   sim.Input
	valid   bool
}

// Log is the fixed-capacity, directly-indexed input history a client
// keeps for its own player, used to replay unacknowledged inputs
// during reconciliation.
type Log struct {
	entries [InputLogLength]inputLogEntry
}

// NewLog creates an empty input log.
func NewLog() *Log { return &Log{} }

// Record stores input as the capture for simTick.
func (l *Log) Record(simTick uint64, input sim.Input) {
	l.entries[simTick%InputLogLength] = inputLogEntry{simTick: simTick, input: input, valid: true}
}

// Get returns the input recorded for simTick, or false if the slot
// holds a different tick's input (either never captured, or
// overwritten after the ring wrapped around).
func (l *Log) Get(simTick uint64) (sim.Input, bool) {
	e := l.entries[simTick%InputLogLength]
	if !e.valid || e.simTick != simTick {
		return sim.Input{}, false
	}
	return e.input, true
}

// Predict captures the local player's input for simTick, records it,
// and advances the player one tick. This is the client's ordinary
// per-tick work outside of reconciliation.
func Predict(g *sim.Game, log_ *Log, playerID sim.PlayerId, simTick uint64, input sim.Input, dt float64) {
	log_.Record(simTick, input)
	p := g.Players.Lookup(playerID)
	if p == nil {
		return
	}
	sim.UpdatePlayer(g, p, &input, dt)
}

// Reconcile checks whether the server's authoritative snapshot
// (authSimTick, authPlayer) agrees with what local prediction already
// arrived at. It replays the snapshot forward on a side copy, up to
// and including currentSimTick-1, and compares the result's position
// against the live, currently-predicted player. If they agree, the
// live player is left untouched: the misprediction that would have
// been corrected never happened, so there's nothing to erase. Only on
// a mismatch is the live player overwritten with the raw authoritative
// snapshot (not the replayed side copy) and the same input window
// replayed again, this time on the live player, so it ends up exactly
// where continuous local prediction would have left it had the
// server's state been known all along.
//
// Comparing before overwriting, and overwriting with the raw snapshot
// rather than the replay result, matters because every recorded input
// since authSimTick already ran once against the live player during
// ordinary per-tick Predict calls: if positions agree, replaying it all
// again on the live player would be redundant, and if they disagree,
// seeding the correction from anything but the server's own raw record
// would carry forward whatever drift caused the mismatch in the first
// place.
func Reconcile(g *sim.Game, inputLog *Log, playerID sim.PlayerId, authPlayer sim.Player, authSimTick, currentSimTick uint64, dt float64) {
	slot := g.Players.Lookup(playerID)
	if slot == nil {
		slot = g.Players.Insert(uint64(playerID), authPlayer)
		replayInputs(g, inputLog, slot, authSimTick, currentSimTick, dt)
		return
	}

	replayed := authPlayer
	replayInputs(g, inputLog, &replayed, authSimTick, currentSimTick, dt)
	if replayed.Pos.Equal(slot.Pos) {
		return
	}

	*slot = authPlayer
	replayInputs(g, inputLog, slot, authSimTick, currentSimTick, dt)
}

// replayInputs advances p through the logged inputs for every tick in
// (authSimTick, currentSimTick), in order, using the same deterministic
// step Predict uses.
func replayInputs(g *sim.Game, inputLog *Log, p *sim.Player, authSimTick, currentSimTick uint64, dt float64) {
	for tick := authSimTick + 1; tick < currentSimTick; tick++ {
		input, ok := inputLog.Get(tick)
		if !ok {
			// The ring wrapped past this tick already, or it was never
			// captured (a dropped frame). Replaying silence is the best
			// available approximation; log it since it means the
			// replayed trajectory may not exactly match what the player
			// actually did.
			log.Printf("predict: missing input for tick %d during reconciliation, replaying idle", tick)
			input = sim.Input{Look: p.Look}
		}
		sim.UpdatePlayer(g, p, &input, dt)
	}
}
