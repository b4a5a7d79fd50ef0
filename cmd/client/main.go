// Command client connects to a tickarena server, predicts its own
// player locally every sim tick, reconciles against the server's
// periodic Auth snapshots, and buffers peer snapshots for smooth
// playback. Like cmd/server, its loop is single-threaded and
// cooperative: the only suspension points are the end-of-frame sleep
// and a zero-timeout transport poll; all socket I/O happens on a
// reader goroutine that only ever pushes onto a channel.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"tickarena/internal/audio"
	"tickarena/internal/codec"
	"tickarena/internal/config"
	"tickarena/internal/drift"
	"tickarena/internal/input"
	"tickarena/internal/peersnap"
	"tickarena/internal/predict"
	"tickarena/internal/render"
	"tickarena/internal/sim"
	"tickarena/internal/transport"
	"tickarena/internal/wire"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	appCfg := config.Load()
	netCfg := appCfg.Net

	addr := "localhost:" + strconv.Itoa(appCfg.Server.Port)
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}
	url := "ws://" + addr + "/ws"

	tr := transport.New(1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	conn, err := tr.Dial(ctx, url)
	cancel()
	if err != nil {
		log.Fatalf("transport dial %s: %v", url, err)
	}
	log.Printf("connected to %s", url)

	greeting, err := awaitGreeting(tr, 5*time.Second)
	if err != nil {
		log.Fatalf("waiting for greeting: %v", err)
	}
	localID := greeting.ID
	netTick := greeting.InitialNetTick
	log.Printf("assigned player id %d, starting net tick %d", localID, netTick)

	m := sim.NewDefaultMap()
	game := sim.NewGame(m, uint64(time.Now().UnixNano()))
	game.Players.Insert(localID, sim.NewPlayer(localID, game.RandomGrassTile(), 0))

	inputLog := predict.NewLog()
	peers := peersnap.NewManager()
	clientDrift := drift.NewClientSide()

	var renderer render.Renderer = render.NewNoOpRenderer()
	if appCfg.Render.Width > 0 && os.Getenv("DISABLE_RENDER") != "true" {
		renderer = render.NewDebugRenderer(appCfg.Render.Width, appCfg.Render.Height, "frame.png")
	}
	defer renderer.Close()

	var sink audio.Sink = audio.NewNoOpSink()
	if appCfg.Audio.Enabled {
		assetDir := os.Getenv("AUDIO_ASSET_DIR")
		if assetDir == "" {
			assetDir = "assets/sfx"
		}
		beepSink, err := audio.NewBeepSink(assetDir, appCfg.Audio.Volume, 20)
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			sink = beepSink
		}
	}
	defer sink.Close()

	var inputSource input.Source = input.NewStdinSource()
	if os.Getenv("INPUT_SOURCE") == "none" {
		inputSource = input.NewNoOpSource()
	}
	defer inputSource.Close()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	frameDuration := time.Second / time.Duration(netCfg.FPS)
	dt := 1.0 / float64(netCfg.FPS)
	simTick := uint64(0)
	tick := 0
	elapsed := 0.0

	log.Println("client ready")

runLoop:
	for {
		frameStart := time.Now()

		for {
			evt := tr.Poll(0)
			if evt.Type == transport.EventNone {
				break
			}
			switch evt.Type {
			case transport.EventReceive:
				handleServerBatch(evt.Payload, game, peers, inputLog, localID, clientDrift, &simTick, dt)
			case transport.EventDisconnect:
				log.Println("disconnected from server, shutting down")
				break runLoop
			}
		}

		in := inputSource.Poll()
		predict.Predict(game, inputLog, localID, simTick, in, dt)
		// Peers are shown one network tick behind the local sim tick,
		// so a snapshot has a window to arrive before it is due.
		activeTick := uint64(0)
		if delay := uint64(netCfg.NetPerSim); simTick > delay {
			activeTick = simTick - delay
		}
		for id, p := range peers.ApplyAll(activeTick) {
			if slot := game.Players.Lookup(id); slot != nil {
				*slot = p
			} else {
				game.Players.Insert(id, p)
			}
		}

		// Trail fade, grenade flight and detonation are deterministic
		// given the projectile records the server already shipped, so
		// Step reproduces them locally instead of waiting on a
		// dedicated explosion packet. Damage it computes is informational
		// only here: player health is authoritative and arrives on the
		// next Auth/PeerAuth snapshot, so the entries are drained, not
		// applied, each tick per the DamageEntry boundary contract.
		sim.Step(game, dt)
		game.Damage.Clear()

		if err := renderer.Draw(game, localID, dt, elapsed); err != nil {
			log.Printf("render: %v", err)
		}
		sink.PlaySounds(game, lookupPos(game, localID), lookupLook(game, localID))
		game.DrainEvents()

		tick++
		simTick++
		elapsed += dt

		if tick%netCfg.NetPerSim == 0 {
			batch := codec.NewClientBatchWriter(netTick, clientDrift.Iteration(), uint64(frameDuration.Nanoseconds()))
			batch.Update(simTick, &wire.ClientUpdatePacket{Input: in})
			if raw, err := batch.Bytes(); err == nil {
				tr.Send(conn, raw)
			}
			netTick++
		}

		sleep := frameDuration - time.Since(frameStart)
		if clientDrift.ShouldSkipSleep() {
			sleep = 0
		} else if clientDrift.ExtraSleepFrame() {
			sleep += frameDuration
		}
		if sleep > 0 {
			time.Sleep(sleep)
		}

		select {
		case <-quit:
			break runLoop
		default:
		}
	}

	log.Println("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	tr.Disconnect(conn)
	tr.Shutdown(shutdownCtx, 2*time.Second)
	log.Println("stopped")
}

// awaitGreeting blocks (using transport's timed-poll suspension point,
// not a busy loop) until the server's Greeting batch arrives or
// timeout elapses.
func awaitGreeting(tr *transport.Transport, timeout time.Duration) (wire.GreetingPacket, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		evt := tr.Poll(100 * time.Millisecond)
		if evt.Type != transport.EventReceive {
			continue
		}
		_, packets, err := codec.DecodeServerBatch(evt.Payload)
		if err != nil {
			continue
		}
		for _, pkt := range packets {
			if pkt.Greeting != nil {
				return *pkt.Greeting, nil
			}
		}
	}
	return wire.GreetingPacket{}, errors.New("timed out waiting for greeting")
}

// handleServerBatch decodes one received payload and applies its
// packets: Auth triggers reconciliation for the local player,
// PeerAuth/PlayerSpawn feed the peer-snapshot buffers, and
// PeerDisconnected releases a peer's buffer. A malformed or
// unrecognized packet is logged; the packets decoded before it are
// still applied, while those after it in the same batch are lost,
// since DecodeServerBatch stops at the first bad record.
func handleServerBatch(
	raw []byte,
	g *sim.Game,
	peers *peersnap.Manager,
	inputLog *predict.Log,
	localID sim.PlayerId,
	clientDrift *drift.ClientSide,
	simTick *uint64,
	dt float64,
) {
	header, packets, err := codec.DecodeServerBatch(raw)
	if err != nil {
		log.Printf("malformed server batch: %v", err)
	}
	if header.Adjustment != 0 {
		clientDrift.Consume(header.Adjustment, header.AdjustmentIteration)
	}

	for _, pkt := range packets {
		switch {
		case pkt.Auth != nil:
			predict.Reconcile(g, inputLog, localID, pkt.Auth.Player, pkt.Auth.SimTick, *simTick, dt)
		case pkt.PeerAuth != nil:
			peers.Peer(pkt.PeerAuth.Player.ID).Push(pkt.PeerAuth.SimTick, pkt.PeerAuth.Player)
		case pkt.PlayerSpawn != nil:
			if pkt.PlayerSpawn.Player.ID == localID {
				g.Players.Insert(localID, pkt.PlayerSpawn.Player)
			} else {
				peers.Peer(pkt.PlayerSpawn.Player.ID).Push(*simTick, pkt.PlayerSpawn.Player)
			}
		case pkt.PeerDisconnected != nil:
			peers.Remove(pkt.PeerDisconnected.PlayerID)
			g.Players.Remove(pkt.PeerDisconnected.PlayerID)
		case pkt.PlayerKill != nil:
			// Health/respawn state rides the next Auth/PlayerSpawn
			// packet; the kill notice itself is informational only.
		case pkt.Hitscan != nil:
			g.Hitscans.Insert(pkt.Hitscan.Hitscan)
		case pkt.Nade != nil:
			g.Nades.Insert(pkt.Nade.Nade)
		case pkt.Sound != nil:
			g.Sounds.Insert(pkt.Sound.Sound)
		case pkt.Step != nil:
			g.Steps.Insert(pkt.Step.Step)
		}
	}
}

func lookupPos(g *sim.Game, id sim.PlayerId) sim.Vec2 {
	if p := g.Players.Lookup(id); p != nil {
		return p.Pos
	}
	return sim.Vec2{}
}

func lookupLook(g *sim.Game, id sim.PlayerId) sim.Vec2 {
	if p := g.Players.Lookup(id); p != nil {
		return p.Look
	}
	return sim.Vec2{X: 1, Y: 0}
}
