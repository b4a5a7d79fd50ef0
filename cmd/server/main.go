// Command server runs the authoritative simulation: it owns the
// canonical Game, accepts WebSocket connections, drains queued client
// input once per sim tick, and broadcasts Auth/PeerAuth/event batches
// to every connected peer on the network-tick cadence. The loop is
// single-threaded and cooperative: transport I/O happens on reader
// goroutines that only ever push onto a channel (see internal/
// transport), and this loop is the sole place that ever touches Game.
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

	"tickarena/internal/api"
	"tickarena/internal/codec"
	"tickarena/internal/config"
	"tickarena/internal/serverauth"
	"tickarena/internal/sim"
	"tickarena/internal/transport"
	"tickarena/internal/wire"
)

const maxSlots = 256

// slotAllocator assigns each connected peer a small stable index so
// wire packets can reference "peer 3" instead of a full PlayerId.
type slotAllocator struct {
	used [maxSlots]bool
}

func (a *slotAllocator) alloc() uint8 {
	for i := range a.used {
		if !a.used[i] {
			a.used[i] = true
			return uint8(i)
		}
	}
	return 0
}

func (a *slotAllocator) free(i uint8) { a.used[i] = false }

type pendingAdjustment struct {
	adjustment int8
	iteration  uint8
	stamp      bool
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	appCfg := config.Load()
	netCfg := appCfg.Net

	seed := uint64(time.Now().UnixNano())
	server := serverauth.NewServer(netCfg, seed)
	log.Printf("simulation seeded with %d, %d FPS, net/sim ratio %d", seed, netCfg.FPS, netCfg.NetPerSim)

	tr := transport.New(50, 20)
	addr := ":" + strconv.Itoa(appCfg.Server.Port)
	if err := tr.Listen(addr); err != nil {
		log.Fatalf("transport listen: %v", err)
	}
	log.Printf("transport listening on %s/ws", addr)

	debugCfg := api.DefaultObservabilityConfig()
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("debug server disabled: %v", err)
		}
	}

	statusServer := api.NewServer(server)
	go func() {
		if err := statusServer.Start(":" + strconv.Itoa(appCfg.Server.Port+1)); err != nil {
			log.Printf("status server stopped: %v", err)
		}
	}()

	connToPlayer := make(map[transport.ConnID]serverauth.PlayerID)
	playerToConn := make(map[serverauth.PlayerID]transport.ConnID)
	playerToSlot := make(map[serverauth.PlayerID]uint8)
	pending := make(map[serverauth.PlayerID]pendingAdjustment)
	var slots slotAllocator

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	frameDuration := time.Second / time.Duration(netCfg.FPS)
	dt := 1.0 / float64(netCfg.FPS)
	tick := 0
	var pendingKills, pendingRespawns []serverauth.PlayerID
	lastConsumedTick := make(map[serverauth.PlayerID]uint64)

	log.Println("server ready")

runLoop:
	for {
		frameStart := time.Now()

		for {
			evt := tr.Poll(0)
			if evt.Type == transport.EventNone {
				break
			}
			switch evt.Type {
			case transport.EventConnect:
				greeting, _ := server.Connect()
				connToPlayer[evt.Conn] = greeting.ID
				playerToConn[greeting.ID] = evt.Conn
				playerToSlot[greeting.ID] = slots.alloc()

				batch := codec.NewServerBatchWriter()
				batch.Greeting(&greeting)
				if raw, err := batch.Bytes(); err == nil {
					tr.Send(evt.Conn, raw)
				}
				api.UpdateTransportConnections(len(connToPlayer))

			case transport.EventReceive:
				playerID, ok := connToPlayer[evt.Conn]
				if !ok {
					continue
				}
				header, packets, err := codec.DecodeClientBatch(evt.Payload)
				if err != nil {
					log.Printf("malformed batch from player %d: %v", playerID, err)
					continue
				}
				adj, iter, stamp, dropped := server.AcceptBatch(playerID, header, packets)
				if dropped {
					api.RecordDroppedBatch()
					log.Printf("batch from player %d outside the tick window, replying Dropped", playerID)
					reply := codec.NewServerBatchWriter()
					if reply.Dropped() == nil {
						if raw, err := reply.Bytes(); err == nil {
							tr.Send(evt.Conn, raw)
						}
					}
				}
				if stamp {
					pending[playerID] = pendingAdjustment{adjustment: adj, iteration: iter, stamp: true}
					api.RecordDriftAdjustment()
				}

			case transport.EventDisconnect:
				playerID, ok := connToPlayer[evt.Conn]
				if !ok {
					continue
				}
				server.Disconnect(playerID)
				delete(connToPlayer, evt.Conn)
				delete(playerToConn, playerID)
				slots.free(playerToSlot[playerID])
				delete(playerToSlot, playerID)
				delete(pending, playerID)
				api.UpdateTransportConnections(len(connToPlayer))
			}
		}

		tickStart := time.Now()
		kills, consumedTicks := server.Tick(dt)
		pendingKills = append(pendingKills, kills...)
		pendingRespawns = append(pendingRespawns, server.RespawnPending()...)
		for id, consumedTick := range consumedTicks {
			lastConsumedTick[id] = consumedTick
		}
		api.RecordTick(time.Since(tickStart))
		api.UpdatePlayerCount(len(connToPlayer))
		tick++

		if tick%netCfg.NetPerSim == 0 {
			server.AdvanceNetTick()
			broadcast(server, tr, playerToConn, playerToSlot, pending, pendingKills, pendingRespawns, lastConsumedTick)
			pendingKills = nil
			pendingRespawns = nil
		}

		if sleep := frameDuration - time.Since(frameStart); sleep > 0 {
			time.Sleep(sleep)
		}

		select {
		case <-quit:
			break runLoop
		default:
		}
	}

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tr.Shutdown(ctx, 5*time.Second)
	statusServer.Stop(ctx)
	log.Println("stopped")
}

// broadcast builds and sends one batch per connected peer: its own
// Auth, every other connected peer's PeerAuth, this tick's kills and
// respawns, and the projectile/sound/step events the simulation
// accumulated since the last drain. Events are drained exactly once,
// after every peer's batch has read them.
func broadcast(
	server *serverauth.Server,
	tr *transport.Transport,
	playerToConn map[serverauth.PlayerID]transport.ConnID,
	playerToSlot map[serverauth.PlayerID]uint8,
	pending map[serverauth.PlayerID]pendingAdjustment,
	kills []serverauth.PlayerID,
	respawned []serverauth.PlayerID,
	lastConsumedTick map[serverauth.PlayerID]uint64,
) {
	for id, conn := range playerToConn {
		player := server.Game.Players.Lookup(id)
		if player == nil {
			continue
		}

		batch := codec.NewServerBatchWriter()
		if adj, ok := pending[id]; ok && adj.stamp {
			batch.SetAdjustment(adj.adjustment, adj.iteration)
			delete(pending, id)
		}

		batch.Auth(&wire.AuthPacket{Player: *player, SimTick: lastConsumedTick[id]})

		for otherID := range playerToConn {
			if otherID == id {
				continue
			}
			other := server.Game.Players.Lookup(otherID)
			if other == nil {
				continue
			}
			batch.PeerAuth(&wire.PeerAuthPacket{
				Player:    *other,
				SimTick:   lastConsumedTick[otherID],
				PeerIndex: playerToSlot[otherID],
			})
		}

		for _, killedID := range kills {
			batch.PlayerKill(&wire.PlayerKillPacket{PlayerID: killedID})
		}
		for _, respawnedID := range respawned {
			if p := server.Game.Players.Lookup(respawnedID); p != nil {
				batch.PlayerSpawn(&wire.PlayerSpawnPacket{Player: *p})
			}
		}

		for _, hs := range server.Game.NewHitscans {
			h := hs
			batch.Hitscan(&wire.HitscanPacket{Hitscan: h})
		}
		for _, nd := range server.Game.NewNades {
			n := nd
			batch.Nade(&wire.NadePacket{Nade: n})
		}
		server.Game.Sounds.ForEach(func(i int, s *sim.SpatialSound) {
			batch.Sound(&wire.SoundPacket{Sound: *s})
		})
		server.Game.Steps.ForEach(func(i int, s *sim.Footstep) {
			batch.Step(&wire.StepPacket{Step: *s})
		})

		if raw, err := batch.Bytes(); err == nil {
			tr.Send(conn, raw)
		}
	}

	server.Game.DrainEvents()
}
