package codec

import (
	"bytes"

	"github.com/pkg/errors"

	"tickarena/internal/wire"
)

// ServerPacket is a decoded server->client record. Exactly one of the
// payload pointers is non-nil, selected by Type; Dropped carries none.
type ServerPacket struct {
	Type wire.ServerPacketType

	Greeting         *wire.GreetingPacket
	PeerGreeting     *wire.PeerGreetingPacket
	Auth             *wire.AuthPacket
	PeerAuth         *wire.PeerAuthPacket
	PeerDisconnected *wire.PeerDisconnectedPacket
	PlayerKill       *wire.PlayerKillPacket
	PlayerSpawn      *wire.PlayerSpawnPacket
	Hitscan          *wire.HitscanPacket
	Nade             *wire.NadePacket
	Sound            *wire.SoundPacket
	Step             *wire.StepPacket
}

// DecodeServerBatch parses a full batch buffer into its header and the
// packets it carries. A packet of an unknown type ends decoding of the
// remaining packets in the batch (there is no way to know its length)
// but returns the packets already decoded alongside the error, so the
// caller can apply what it understood and log the violation per the
// protocol-violation error handling rule, rather than discard a whole
// batch over one bad record.
func DecodeServerBatch(raw []byte) (wire.ServerBatchHeader, []ServerPacket, error) {
	r := bytes.NewReader(raw)

	var header wire.ServerBatchHeader
	if err := wire.DecodeFrom(r, &header); err != nil {
		return header, nil, errors.Wrap(err, "codec: decode server batch header")
	}

	packets := make([]ServerPacket, 0, header.NumPackets)
	for i := uint16(0); i < header.NumPackets; i++ {
		var ph wire.ServerHeader
		if err := wire.DecodeFrom(r, &ph); err != nil {
			return header, packets, errors.Wrapf(err, "codec: decode server packet header at index %d", i)
		}

		pkt := ServerPacket{Type: ph.Type}
		var err error
		switch ph.Type {
		case wire.ServerPacketGreeting:
			pkt.Greeting = new(wire.GreetingPacket)
			err = wire.DecodeFrom(r, pkt.Greeting)
		case wire.ServerPacketPeerGreeting:
			pkt.PeerGreeting = new(wire.PeerGreetingPacket)
			err = wire.DecodeFrom(r, pkt.PeerGreeting)
		case wire.ServerPacketDropped:
			// no payload
		case wire.ServerPacketAuth:
			pkt.Auth = new(wire.AuthPacket)
			err = wire.DecodeFrom(r, pkt.Auth)
		case wire.ServerPacketPeerAuth:
			pkt.PeerAuth = new(wire.PeerAuthPacket)
			err = wire.DecodeFrom(r, pkt.PeerAuth)
		case wire.ServerPacketPeerDisconnected:
			pkt.PeerDisconnected = new(wire.PeerDisconnectedPacket)
			err = wire.DecodeFrom(r, pkt.PeerDisconnected)
		case wire.ServerPacketPlayerKill:
			pkt.PlayerKill = new(wire.PlayerKillPacket)
			err = wire.DecodeFrom(r, pkt.PlayerKill)
		case wire.ServerPacketPlayerSpawn:
			pkt.PlayerSpawn = new(wire.PlayerSpawnPacket)
			err = wire.DecodeFrom(r, pkt.PlayerSpawn)
		case wire.ServerPacketHitscan:
			pkt.Hitscan = new(wire.HitscanPacket)
			err = wire.DecodeFrom(r, pkt.Hitscan)
		case wire.ServerPacketNade:
			pkt.Nade = new(wire.NadePacket)
			err = wire.DecodeFrom(r, pkt.Nade)
		case wire.ServerPacketSound:
			pkt.Sound = new(wire.SoundPacket)
			err = wire.DecodeFrom(r, pkt.Sound)
		case wire.ServerPacketStep:
			pkt.Step = new(wire.StepPacket)
			err = wire.DecodeFrom(r, pkt.Step)
		default:
			return header, packets, errors.Errorf("codec: unknown server packet type %d at index %d", ph.Type, i)
		}
		if err != nil {
			return header, packets, errors.Wrapf(err, "codec: decode server packet payload at index %d", i)
		}
		packets = append(packets, pkt)
	}

	return header, packets, nil
}

// ClientPacket is a decoded client->server record.
type ClientPacket struct {
	SimTick uint64
	Update  *wire.ClientUpdatePacket
}

// DecodeClientBatch parses a full client batch buffer.
func DecodeClientBatch(raw []byte) (wire.ClientBatchHeader, []ClientPacket, error) {
	r := bytes.NewReader(raw)

	var header wire.ClientBatchHeader
	if err := wire.DecodeFrom(r, &header); err != nil {
		return header, nil, errors.Wrap(err, "codec: decode client batch header")
	}

	packets := make([]ClientPacket, 0, header.NumPackets)
	for i := uint16(0); i < header.NumPackets; i++ {
		var ph wire.ClientHeader
		if err := wire.DecodeFrom(r, &ph); err != nil {
			return header, packets, errors.Wrapf(err, "codec: decode client packet header at index %d", i)
		}

		switch ph.Type {
		case wire.ClientPacketUpdate:
			var upd wire.ClientUpdatePacket
			if err := wire.DecodeFrom(r, &upd); err != nil {
				return header, packets, errors.Wrapf(err, "codec: decode client update payload at index %d", i)
			}
			packets = append(packets, ClientPacket{SimTick: ph.SimTick, Update: &upd})
		default:
			return header, packets, errors.Errorf("codec: unknown client packet type %d at index %d", ph.Type, i)
		}
	}

	return header, packets, nil
}
