package audio

import (
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/pkg/errors"

	"tickarena/internal/sim"
)

const sampleRate = 44100

// clip is a short fully-decoded OGG Vorbis effect. Unlike background
// music (streamed on demand, see the teacher's MusicPlayer), one-shot
// sound effects are small enough to decode once at load time and
// replay from memory every time the cue fires.
type clip struct {
	buffer *beep.Buffer
}

// BeepSink mixes positioned one-shot cues through gopxl/beep's
// speaker. Distance attenuation is linear falloff to zero at maxRange;
// panning is the cue's offset projected onto the observer's right
// vector (perpendicular to look).
type BeepSink struct {
	mu       sync.Mutex
	clips    map[sim.SoundKind]*clip
	volume   float64
	maxRange float64
}

// NewBeepSink initializes the speaker at sampleRate and loads one OGG
// clip per sim.SoundKind from assetDir (files named "<kind>.ogg"). A
// clip that fails to load is skipped with a warning rather than
// aborting startup, the same graceful-degradation policy the
// teacher's background music loader uses.
func NewBeepSink(assetDir string, volume, maxRange float64) (*BeepSink, error) {
	if err := speaker.Init(sampleRate, sampleRate/10); err != nil {
		return nil, errors.Wrap(err, "audio: init speaker")
	}

	s := &BeepSink{
		clips:    make(map[sim.SoundKind]*clip),
		volume:   volume,
		maxRange: maxRange,
	}

	for kind, name := range clipNames {
		path := filepath.Join(assetDir, name)
		c, err := loadClip(path)
		if err != nil {
			log.Printf("audio: skipping cue %d (%s): %v", kind, name, err)
			continue
		}
		s.clips[kind] = c
	}

	return s, nil
}

var clipNames = map[sim.SoundKind]string{
	sim.SoundSniperFire: "sniper_fire.ogg",
	sim.SoundNadeBeep:   "nade_beep.ogg",
	sim.SoundExplosion:  "explosion.ogg",
	sim.SoundFootstep:   "footstep.ogg",
}

func loadClip(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := vorbis.Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return &clip{buffer: buf}, nil
}

// PlaySounds plays each of g's accumulated cues and steps against the
// observer's position and facing. It only reads the lists; clearing
// them is left to the caller (Game.DrainEvents).
func (s *BeepSink) PlaySounds(g *sim.Game, observerPos, observerLook sim.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.Sounds.ForEach(func(i int, sound *sim.SpatialSound) {
		s.play(sound.Sound, sound.Pos, observerPos, observerLook)
	})
	g.Steps.ForEach(func(i int, step *sim.Footstep) {
		s.play(sim.SoundFootstep, step.Pos, observerPos, observerLook)
	})
}

func (s *BeepSink) play(kind sim.SoundKind, pos, observerPos, observerLook sim.Vec2) {
	c, ok := s.clips[kind]
	if !ok {
		return
	}

	dx := pos.X - observerPos.X
	dy := pos.Y - observerPos.Y
	dist := math.Hypot(dx, dy)
	if dist >= s.maxRange {
		return
	}
	atten := 1 - dist/s.maxRange

	// Right vector is look rotated -90 degrees; projecting the offset
	// onto it gives a [-1, 1] pan with no trig beyond what's already here.
	rightX, rightY := observerLook.Y, -observerLook.X
	pan := 0.0
	if dist > 1e-6 {
		pan = clampPan((dx*rightX + dy*rightY) / dist)
	}

	streamer := c.buffer.Streamer(0, c.buffer.Len())
	volumed := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   math.Log2(math.Max(s.volume*atten, 1e-6)),
		Silent:   s.volume*atten <= 0,
	}
	panned := &effects.Pan{Streamer: volumed, Pan: pan}
	speaker.Play(panned)
}

func clampPan(p float64) float64 {
	if p < -1 {
		return -1
	}
	if p > 1 {
		return 1
	}
	return p
}

// Close stops the speaker backend. Decoded clips are plain in-memory
// buffers and need no explicit release.
func (s *BeepSink) Close() error {
	speaker.Close()
	return nil
}
