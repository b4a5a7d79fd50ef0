// Package codec layers fixed-capacity batches over internal/wire's
// per-packet encoding: a batch is a batch-header followed by N
// (packet-header, payload) pairs, shipped as a single transport
// message per network tick. Writers accumulate records and bump
// num_packets in the header; readers pop records off the received
// buffer until num_packets is exhausted.
package codec

import (
	"bytes"

	"github.com/pkg/errors"

	"tickarena/internal/wire"
)

// ServerBatchWriter accumulates a server->client batch for one peer.
// Reset clears it for the next network tick.
type ServerBatchWriter struct {
	header wire.ServerBatchHeader
	body   bytes.Buffer
}

// NewServerBatchWriter starts an empty batch.
func NewServerBatchWriter() *ServerBatchWriter {
	return &ServerBatchWriter{}
}

// SetAdjustment stamps the drift correction this batch carries.
func (w *ServerBatchWriter) SetAdjustment(adjustment int8, iteration uint8) {
	w.header.Adjustment = adjustment
	w.header.AdjustmentIteration = iteration
}

// SetAvgDrift stamps the server's rolling average observed drift,
// carried for client-side diagnostics.
func (w *ServerBatchWriter) SetAvgDrift(avgDrift uint64) {
	w.header.AvgDrift = avgDrift
}

func (w *ServerBatchWriter) appendPacket(t wire.ServerPacketType, payload any) error {
	if err := wire.EncodeTo(&w.body, &wire.ServerHeader{Type: t}); err != nil {
		return errors.Wrapf(err, "codec: append server packet header type=%d", t)
	}
	if err := wire.EncodeTo(&w.body, payload); err != nil {
		return errors.Wrapf(err, "codec: append server packet payload type=%d", t)
	}
	w.header.NumPackets++
	return nil
}

func (w *ServerBatchWriter) Greeting(p *wire.GreetingPacket) error {
	return w.appendPacket(wire.ServerPacketGreeting, p)
}
func (w *ServerBatchWriter) PeerGreeting(p *wire.PeerGreetingPacket) error {
	return w.appendPacket(wire.ServerPacketPeerGreeting, p)
}
func (w *ServerBatchWriter) Auth(p *wire.AuthPacket) error {
	return w.appendPacket(wire.ServerPacketAuth, p)
}
func (w *ServerBatchWriter) PeerAuth(p *wire.PeerAuthPacket) error {
	return w.appendPacket(wire.ServerPacketPeerAuth, p)
}
func (w *ServerBatchWriter) PeerDisconnected(p *wire.PeerDisconnectedPacket) error {
	return w.appendPacket(wire.ServerPacketPeerDisconnected, p)
}
func (w *ServerBatchWriter) PlayerKill(p *wire.PlayerKillPacket) error {
	return w.appendPacket(wire.ServerPacketPlayerKill, p)
}
func (w *ServerBatchWriter) PlayerSpawn(p *wire.PlayerSpawnPacket) error {
	return w.appendPacket(wire.ServerPacketPlayerSpawn, p)
}
func (w *ServerBatchWriter) Hitscan(p *wire.HitscanPacket) error {
	return w.appendPacket(wire.ServerPacketHitscan, p)
}
func (w *ServerBatchWriter) Nade(p *wire.NadePacket) error {
	return w.appendPacket(wire.ServerPacketNade, p)
}
func (w *ServerBatchWriter) Sound(p *wire.SoundPacket) error {
	return w.appendPacket(wire.ServerPacketSound, p)
}
func (w *ServerBatchWriter) Step(p *wire.StepPacket) error {
	return w.appendPacket(wire.ServerPacketStep, p)
}

// Dropped marks this batch as a Dropped reply; it carries no payload.
func (w *ServerBatchWriter) Dropped() error {
	if err := wire.EncodeTo(&w.body, &wire.ServerHeader{Type: wire.ServerPacketDropped}); err != nil {
		return errors.Wrap(err, "codec: append dropped header")
	}
	w.header.NumPackets++
	return nil
}

// Empty reports whether any packets have been appended since the last
// Reset; an empty batch is still worth shipping on a network tick only
// if it carries a nonzero adjustment.
func (w *ServerBatchWriter) Empty() bool {
	return w.header.NumPackets == 0 && w.header.Adjustment == 0
}

// Bytes finalizes the batch (header followed by the accumulated
// packet bodies) without resetting the writer.
func (w *ServerBatchWriter) Bytes() ([]byte, error) {
	head, err := wire.EncodeServerBatchHeader(&w.header)
	if err != nil {
		return nil, errors.Wrap(err, "codec: encode server batch header")
	}
	return append(head, w.body.Bytes()...), nil
}

// Reset clears the writer for the next network tick, preserving no
// state between batches (the adjustment handshake lives on the caller,
// not the writer).
func (w *ServerBatchWriter) Reset() {
	w.header = wire.ServerBatchHeader{}
	w.body.Reset()
}

// ClientBatchWriter accumulates a client->server batch. In practice a
// client sends at most one ClientUpdate per network tick, but the
// writer supports several in case an implementer batches missed ticks.
type ClientBatchWriter struct {
	header wire.ClientBatchHeader
	body   bytes.Buffer
}

func NewClientBatchWriter(netTick uint64, adjustmentIteration uint8, avgTotalFrameTime uint64) *ClientBatchWriter {
	return &ClientBatchWriter{
		header: wire.ClientBatchHeader{
			NetTick:             netTick,
			AdjustmentIteration: adjustmentIteration,
			AvgTotalFrameTime:   avgTotalFrameTime,
		},
	}
}

func (w *ClientBatchWriter) Update(simTick uint64, p *wire.ClientUpdatePacket) error {
	h := wire.ClientHeader{Type: wire.ClientPacketUpdate, SimTick: simTick}
	if err := wire.EncodeTo(&w.body, &h); err != nil {
		return errors.Wrap(err, "codec: append client packet header")
	}
	if err := wire.EncodeTo(&w.body, p); err != nil {
		return errors.Wrap(err, "codec: append client packet payload")
	}
	w.header.NumPackets++
	return nil
}

func (w *ClientBatchWriter) Bytes() ([]byte, error) {
	head, err := wire.EncodeClientBatchHeader(&w.header)
	if err != nil {
		return nil, errors.Wrap(err, "codec: encode client batch header")
	}
	return append(head, w.body.Bytes()...), nil
}
