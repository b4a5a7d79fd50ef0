package input

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"tickarena/internal/sim"
)

// actionNames maps the line-protocol token for each action bit.
// Unrecognized tokens are logged and skipped rather than rejecting
// the whole line, matching the protocol-violation handling used for
// malformed network batches.
var actionNames = map[string]sim.InputAction{
	"moveleft":      sim.InputMoveLeft,
	"moveright":     sim.InputMoveRight,
	"moveup":        sim.InputMoveUp,
	"movedown":      sim.InputMoveDown,
	"dodge":         sim.InputMoveDodge,
	"shootpressed":  sim.InputShootPressed,
	"shootheld":     sim.InputShootHeld,
	"shootreleased": sim.InputShootReleased,
	"switchweapon":  sim.InputSwitchWeapon,
	"zoom":          sim.InputZoom,
}

// StdinSource reads one line of whitespace-separated action tokens
// per tick from standard input, e.g. "moveright shootheld look=1,0".
// A reader goroutine only ever pushes the parsed result onto a
// buffered channel; Poll never blocks and returns the last-received
// input if nothing new has arrived, the same non-blocking contract
// internal/transport's event pump gives the tick loop.
type StdinSource struct {
	lines chan sim.Input
	last  sim.Input
	done  chan struct{}
}

// NewStdinSource starts the background line reader and returns a
// ready-to-poll source.
func NewStdinSource() *StdinSource {
	s := &StdinSource{
		lines: make(chan sim.Input, 1),
		last:  sim.Input{Look: sim.Vec2{X: 1, Y: 0}},
		done:  make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *StdinSource) readLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-s.done:
			return
		default:
		}
		in := parseLine(scanner.Text())
		select {
		case <-s.lines:
		default:
		}
		select {
		case s.lines <- in:
		case <-s.done:
			return
		}
	}
}

func parseLine(line string) sim.Input {
	var in sim.Input
	in.Look = sim.Vec2{X: 1, Y: 0}
	for _, tok := range strings.Fields(line) {
		if x, y, ok := parseLook(tok); ok {
			in.Look = sim.Vec2{X: x, Y: y}.NormalizeOr(sim.Vec2{X: 1, Y: 0})
			continue
		}
		action, ok := actionNames[strings.ToLower(tok)]
		if !ok {
			log.Printf("input: unrecognized action token %q, skipping", tok)
			continue
		}
		in.Active[action] = true
	}
	return in
}

func parseLook(tok string) (x, y float64, ok bool) {
	rest, found := strings.CutPrefix(tok, "look=")
	if !found {
		return 0, 0, false
	}
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.ParseFloat(parts[0], 64)
	y, errY := strconv.ParseFloat(parts[1], 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

// Poll returns the most recently parsed line's input, or the last one
// seen if stdin has produced nothing new since the previous call.
func (s *StdinSource) Poll() sim.Input {
	select {
	case in := <-s.lines:
		s.last = in
	default:
	}
	return s.last
}

// Close stops the reader goroutine. The underlying os.Stdin read is
// left blocked until the next newline or EOF; that goroutine exits
// silently once it does since it first selects on done.
func (s *StdinSource) Close() error {
	close(s.done)
	return nil
}
