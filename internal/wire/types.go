// Package wire defines the binary wire format exchanged between the
// server and its clients: packet type tags, batch headers, and the
// payload record for each packet type. Encoding lives in codec.go;
// this file only holds the shapes, mirroring the server/client header
// split used throughout the system this was ported from.
package wire

import "tickarena/internal/sim"

// ServerPacketType tags a packet the server sends to a client.
type ServerPacketType uint8

const (
	ServerPacketGreeting ServerPacketType = iota
	ServerPacketPeerGreeting
	ServerPacketDropped
	ServerPacketAuth
	ServerPacketPeerAuth
	ServerPacketPeerDisconnected
	ServerPacketPlayerKill
	ServerPacketPlayerSpawn
	ServerPacketHitscan
	ServerPacketNade
	// ServerPacketSound and ServerPacketStep are not present in the
	// original wire format; they promote spatial audio cues and
	// footsteps to first-class packets instead of leaving them as a
	// client-only side effect of simulating hitscan/nade packets, so a
	// spectator client with no local simulation can still hear them.
	ServerPacketSound
	ServerPacketStep
)

// ClientPacketType tags a packet a client sends to the server.
type ClientPacketType uint8

const (
	ClientPacketUpdate ClientPacketType = iota
)

// ServerBatchHeader prefixes every batch of packets sent server->client.
type ServerBatchHeader struct {
	NumPackets          uint16
	Adjustment          int8
	AdjustmentIteration uint8
	AvgDrift            uint64
}

// ServerHeader prefixes each individual packet within a server batch.
type ServerHeader struct {
	Type ServerPacketType
}

// ClientBatchHeader prefixes every batch of packets sent client->server.
type ClientBatchHeader struct {
	NetTick             uint64
	NumPackets          uint16
	AdjustmentIteration uint8
	AvgTotalFrameTime   uint64
}

// ClientHeader prefixes each individual packet within a client batch.
type ClientHeader struct {
	Type    ClientPacketType
	SimTick uint64
}

// GreetingPacket is sent once, to a newly connected client: its
// assigned player id and the net_tick it should start counting from.
type GreetingPacket struct {
	InitialNetTick uint64
	ID             uint64
}

// PeerGreetingPacket introduces an already-connected peer to a newly
// connected client, and vice versa.
type PeerGreetingPacket struct {
	ID        uint64
	PeerIndex uint8
}

// AuthPacket is the server's authoritative state for the receiving
// client's own player, stamped with the sim_tick it was computed at.
type AuthPacket struct {
	Player  sim.Player
	SimTick uint64
}

// PeerAuthPacket is the server's authoritative state for one remote
// peer, queued into that peer's snapshot buffer on receipt.
type PeerAuthPacket struct {
	Player    sim.Player
	SimTick   uint64
	PeerIndex uint8
}

// PeerDisconnectedPacket announces a peer has left.
type PeerDisconnectedPacket struct {
	PlayerID uint64
}

// PlayerSpawnPacket announces a new player (how every client, and the
// newly spawned player itself, learn of a fresh spawn).
type PlayerSpawnPacket struct {
	Player sim.Player
}

// PlayerKillPacket announces a player has died.
type PlayerKillPacket struct {
	PlayerID uint64
}

// HitscanPacket announces a newly fired sniper shot.
type HitscanPacket struct {
	Hitscan sim.HitscanProjectile
}

// NadePacket announces a newly thrown grenade.
type NadePacket struct {
	Nade sim.NadeProjectile
}

// SoundPacket carries a positioned, one-shot audio cue.
type SoundPacket struct {
	Sound sim.SpatialSound
}

// StepPacket carries a positioned footstep cue.
type StepPacket struct {
	Step sim.Footstep
}

// ClientUpdatePacket is the single payload a client ever sends: its
// captured input for the sim_tick named in the preceding ClientHeader.
type ClientUpdatePacket struct {
	Input sim.Input
}
