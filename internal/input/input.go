// Package input defines the client's input-source boundary contract:
// something that supplies one sim.Input per tick. Timestamping is the
// tick loop's job, not the source's, so Poll returns only the action
// bits and look vector for "right now".
package input

import "tickarena/internal/sim"

// Source supplies the local player's input for the current tick. It
// must never block: a client with nothing new to report returns its
// last known state.
type Source interface {
	Poll() sim.Input
	Close() error
}

// NoOpSource always reports a neutral input (no actions, default
// look). Useful for headless load-testing clients and in tests.
type NoOpSource struct{}

// NewNoOpSource creates a source that never reports any action.
func NewNoOpSource() *NoOpSource { return &NoOpSource{} }

func (NoOpSource) Poll() sim.Input { return sim.Input{Look: sim.Vec2{X: 1, Y: 0}} }
func (NoOpSource) Close() error    { return nil }
