package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// byteOrder is little-endian throughout, matching the packed structs
// this format was ported from (x86/ARM are both little-endian).
var byteOrder = binary.LittleEndian

// encode writes a fixed-size value (a struct made only of integers,
// floats, bools and fixed arrays/nested structs of the same) in wire
// order. Every payload type in this package qualifies, the same way
// the original's __attribute__((packed)) structs did.
func encode(w io.Writer, v any) error {
	if err := binary.Write(w, byteOrder, v); err != nil {
		return errors.Wrap(err, "wire: encode")
	}
	return nil
}

func decode(r io.Reader, v any) error {
	if err := binary.Read(r, byteOrder, v); err != nil {
		return errors.Wrap(err, "wire: decode")
	}
	return nil
}

// Encode writes v's wire encoding into a fresh buffer.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode populates v (a pointer to a wire payload type) by reading its
// encoding from b.
func Decode(b []byte, v any) error {
	return decode(bytes.NewReader(b), v)
}

// EncodeTo and DecodeFrom are the streaming forms used by internal/codec
// to write/read several packets back to back into one batch buffer
// without an intermediate allocation per packet.
func EncodeTo(w io.Writer, v any) error    { return encode(w, v) }
func DecodeFrom(r io.Reader, v any) error { return decode(r, v) }

// EncodeServerBatchHeader, EncodeClientBatchHeader etc. are thin named
// wrappers kept for symmetry with the original header/payload split:
// callers writing a batch always write a header struct first, then one
// header+payload pair per packet.

func EncodeServerBatchHeader(h *ServerBatchHeader) ([]byte, error) { return Encode(h) }
func DecodeServerBatchHeader(b []byte) (ServerBatchHeader, error) {
	var h ServerBatchHeader
	err := Decode(b, &h)
	return h, err
}

func EncodeServerHeader(h *ServerHeader) ([]byte, error) { return Encode(h) }
func DecodeServerHeader(b []byte) (ServerHeader, error) {
	var h ServerHeader
	err := Decode(b, &h)
	return h, err
}

func EncodeClientBatchHeader(h *ClientBatchHeader) ([]byte, error) { return Encode(h) }
func DecodeClientBatchHeader(b []byte) (ClientBatchHeader, error) {
	var h ClientBatchHeader
	err := Decode(b, &h)
	return h, err
}

func EncodeClientHeader(h *ClientHeader) ([]byte, error) { return Encode(h) }
func DecodeClientHeader(b []byte) (ClientHeader, error) {
	var h ClientHeader
	err := Decode(b, &h)
	return h, err
}

func EncodeGreeting(p *GreetingPacket) ([]byte, error) { return Encode(p) }
func DecodeGreeting(b []byte) (GreetingPacket, error) {
	var p GreetingPacket
	err := Decode(b, &p)
	return p, err
}

func EncodePeerGreeting(p *PeerGreetingPacket) ([]byte, error) { return Encode(p) }
func DecodePeerGreeting(b []byte) (PeerGreetingPacket, error) {
	var p PeerGreetingPacket
	err := Decode(b, &p)
	return p, err
}

func EncodeAuth(p *AuthPacket) ([]byte, error) { return Encode(p) }
func DecodeAuth(b []byte) (AuthPacket, error) {
	var p AuthPacket
	err := Decode(b, &p)
	return p, err
}

func EncodePeerAuth(p *PeerAuthPacket) ([]byte, error) { return Encode(p) }
func DecodePeerAuth(b []byte) (PeerAuthPacket, error) {
	var p PeerAuthPacket
	err := Decode(b, &p)
	return p, err
}

func EncodePeerDisconnected(p *PeerDisconnectedPacket) ([]byte, error) { return Encode(p) }
func DecodePeerDisconnected(b []byte) (PeerDisconnectedPacket, error) {
	var p PeerDisconnectedPacket
	err := Decode(b, &p)
	return p, err
}

func EncodePlayerSpawn(p *PlayerSpawnPacket) ([]byte, error) { return Encode(p) }
func DecodePlayerSpawn(b []byte) (PlayerSpawnPacket, error) {
	var p PlayerSpawnPacket
	err := Decode(b, &p)
	return p, err
}

func EncodePlayerKill(p *PlayerKillPacket) ([]byte, error) { return Encode(p) }
func DecodePlayerKill(b []byte) (PlayerKillPacket, error) {
	var p PlayerKillPacket
	err := Decode(b, &p)
	return p, err
}

func EncodeHitscan(p *HitscanPacket) ([]byte, error) { return Encode(p) }
func DecodeHitscan(b []byte) (HitscanPacket, error) {
	var p HitscanPacket
	err := Decode(b, &p)
	return p, err
}

func EncodeNade(p *NadePacket) ([]byte, error) { return Encode(p) }
func DecodeNade(b []byte) (NadePacket, error) {
	var p NadePacket
	err := Decode(b, &p)
	return p, err
}

func EncodeSound(p *SoundPacket) ([]byte, error) { return Encode(p) }
func DecodeSound(b []byte) (SoundPacket, error) {
	var p SoundPacket
	err := Decode(b, &p)
	return p, err
}

func EncodeStep(p *StepPacket) ([]byte, error) { return Encode(p) }
func DecodeStep(b []byte) (StepPacket, error) {
	var p StepPacket
	err := Decode(b, &p)
	return p, err
}

func EncodeClientUpdate(p *ClientUpdatePacket) ([]byte, error) { return Encode(p) }
func DecodeClientUpdate(b []byte) (ClientUpdatePacket, error) {
	var p ClientUpdatePacket
	err := Decode(b, &p)
	return p, err
}
