// Package serverauth implements the server's authoritative tick: it
// owns the canonical Game, drains each peer's queued input in
// scheduled order, runs the same deterministic step prediction uses,
// and reports the kills, respawns and consumed ticks the caller
// (cmd/server) needs to build the Auth/PeerAuth/event packets of each
// peer's next batch.
package serverauth

import (
	"tickarena/internal/codec"
	"tickarena/internal/config"
	"tickarena/internal/sim"
	"tickarena/internal/wire"
)

// Server is the authoritative simulation owner.
type Server struct {
	Game *sim.Game
	Net  config.NetConfig

	SimTick uint64
	NetTick uint64

	peers        map[PlayerID]*Peer
	nextPlayerID PlayerID
}

// NewServer constructs a server authority loop over a freshly built game.
func NewServer(net config.NetConfig, seed uint64) *Server {
	m := sim.NewDefaultMap()
	return &Server{
		Game:         sim.NewGame(m, seed),
		Net:          net,
		peers:        make(map[PlayerID]*Peer),
		nextPlayerID: 1,
	}
}

// Connect allocates a PlayerId and a fresh Player record for a newly
// accepted transport connection, and returns the Greeting payload the
// caller should send back.
func (s *Server) Connect() (wire.GreetingPacket, *Peer) {
	id := s.nextPlayerID
	s.nextPlayerID++

	spawn := s.Game.RandomGrassTile()
	hue := float64(id%12) / 12.0
	player := sim.NewPlayer(id, spawn, hue)
	s.Game.Players.Insert(id, player)

	peer := NewPeer(id)
	s.peers[id] = peer

	return wire.GreetingPacket{InitialNetTick: s.NetTick, ID: id}, peer
}

// Disconnect frees a player's record and tracking state, per the
// cancellation contract: pending input-log entries for the peer are
// discarded along with it.
func (s *Server) Disconnect(id PlayerID) {
	delete(s.peers, id)
	s.Game.Players.Remove(id)
}

// Peers exposes the current peer set for iteration by the transport
// loop (e.g. to fan out batches).
func (s *Server) Peers() map[PlayerID]*Peer { return s.peers }

// AcceptBatch validates an incoming client batch's net_tick against
// the valid-tick window, queues its ClientUpdate records, and stamps a
// drift adjustment on the peer for its next outgoing batch. It returns
// dropped=true if the batch was outside the window (the caller should
// reply with a Dropped packet) alongside the adjustment to stamp
// regardless.
func (s *Server) AcceptBatch(id PlayerID, header wire.ClientBatchHeader, packets []codec.ClientPacket) (adjustment int8, iteration uint8, stamp bool, dropped bool) {
	peer, ok := s.peers[id]
	if !ok {
		return 0, 0, false, true
	}

	w := s.Net.TickWindow
	for _, pkt := range packets {
		if pkt.Update == nil {
			continue
		}
		diff := int64(s.SimTick) + int64(w) - 1 - int64(pkt.SimTick)
		if diff < -(int64(w) - 1) {
			// From further in the future than the window allows to queue
			// meaningfully; accept anyway, it'll be due soon.
			peer.Enqueue(pkt.SimTick, pkt.Update.Input)
			continue
		}
		if diff > 0 && pkt.SimTick+uint64(w) <= s.SimTick {
			dropped = true
			continue
		}
		peer.Enqueue(pkt.SimTick, pkt.Update.Input)
	}

	adj, iter, doStamp := peer.Drift.Observe(s.SimTick, header.NetTick, w, header.AdjustmentIteration)
	peer.LastNetTick = header.NetTick
	return adj, iter, doStamp, dropped
}

// Tick runs exactly one authoritative sim-tick: consume each peer's
// due input (or idle if none is queued yet), advance every player,
// step projectiles and explosions, apply pending damage, and enqueue
// kills for respawn. Order matches the fixed per-tick sequence the
// concurrency design requires: apply input-log, run step, respawn +
// broadcast is the caller's job once this returns. consumedTicks
// reports, per connected player, the client sim-tick their Player
// record now reflects — the tick the caller's next Auth/PeerAuth for
// that player must be stamped with, not the server's own SimTick.
func (s *Server) Tick(dt float64) (kills []PlayerID, consumedTicks map[PlayerID]uint64) {
	s.Game.BeginTick()
	consumedTicks = make(map[PlayerID]uint64, len(s.peers))

	s.Game.Players.ForEach(func(key uint64, p *sim.Player) {
		peer, ok := s.peers[PlayerID(key)]
		var input sim.Input
		if ok {
			due, consumedTick, found := peer.Due(s.SimTick)
			if found {
				input = due
			} else {
				input = sim.Input{Look: p.Look}
			}
			consumedTicks[PlayerID(key)] = consumedTick
		}
		sim.UpdatePlayer(s.Game, p, &input, dt)
	})

	sim.Step(s.Game, dt)

	s.Game.Damage.ForEach(func(i int, d *sim.DamageEntry) {
		p := s.Game.Players.Lookup(d.PlayerID)
		if p == nil || p.Health <= 0 {
			return
		}
		p.Health -= d.Damage
		if p.Health <= 0 {
			p.Health = 0
			kills = append(kills, p.ID)
			if peer, ok := s.peers[p.ID]; ok {
				peer.PendingRespawn = true
			}
		}
	})
	s.Game.Damage.Clear()

	s.SimTick++
	return kills, consumedTicks
}

// RespawnPending places every player flagged PendingRespawn back at a
// random grass tile with full health, returning their ids so the
// caller can announce a PlayerSpawn.
func (s *Server) RespawnPending() []PlayerID {
	var respawned []PlayerID
	for id, peer := range s.peers {
		if !peer.PendingRespawn {
			continue
		}
		p := s.Game.Players.Lookup(id)
		if p == nil {
			continue
		}
		*p = sim.NewPlayer(id, s.Game.RandomGrassTile(), p.Hue)
		peer.PendingRespawn = false
		respawned = append(respawned, id)
	}
	return respawned
}

// AdvanceNetTick bumps the server's own network-tick counter; called
// once every NetPerSim sim-ticks by the caller's frame loop.
func (s *Server) AdvanceNetTick() {
	s.NetTick++
}

// Stats is a point-in-time summary for the status API; it never
// exposes Game directly so a status handler can't accidentally mutate
// simulation state.
type Stats struct {
	PlayerCount int
	AliveCount  int
	SimTick     uint64
	NetTick     uint64
}

// Stats reports the current server summary.
func (s *Server) Stats() Stats {
	stats := Stats{SimTick: s.SimTick, NetTick: s.NetTick}
	s.Game.Players.ForEach(func(key uint64, p *sim.Player) {
		stats.PlayerCount++
		if p.Health > 0 {
			stats.AliveCount++
		}
	})
	return stats
}
