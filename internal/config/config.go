// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all simulation, render and
// server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// NETWORK / TICK CONFIGURATION
// =============================================================================

// NetConfig holds the tick-clock and protocol constants both client
// and server must agree on.
type NetConfig struct {
	FPS            int // Simulated frames per second; dt = 1/FPS.
	NetPerSim      int // Sim-ticks per network tick.
	TickWindow     int // W: how many ticks of slack the server accepts an input batch within.
	InputLogLength int // L: length of the client's directly-indexed input ring; the ring itself is sized by predict.InputLogLength, which does not read this field.
	MaxClients     int // Hard cap on concurrently connected players.
}

// DefaultNet returns the default tick/protocol configuration.
func DefaultNet() NetConfig {
	return NetConfig{
		FPS:            60,
		NetPerSim:      2,
		TickWindow:     5,
		InputLogLength: 256,
		MaxClients:     32,
	}
}

// NetFromEnv returns net configuration with environment variable overrides.
func NetFromEnv() NetConfig {
	cfg := DefaultNet()

	if v := getEnvInt("SIM_FPS", 0); v > 0 {
		cfg.FPS = v
	}
	if v := getEnvInt("NET_PER_SIM", 0); v > 0 {
		cfg.NetPerSim = v
	}
	if v := getEnvInt("TICK_WINDOW", 0); v > 0 {
		cfg.TickWindow = v
	}
	if v := getEnvInt("MAX_CLIENTS", 0); v > 0 {
		cfg.MaxClients = v
	}

	return cfg
}

// =============================================================================
// GAME RESOURCE LIMITS
// =============================================================================

// ResourceLimits records the fixed-capacity collections' sizes. Its
// defaults equal the constants internal/sim sizes its collections
// from (sim.MaxClients, sim.MaxSteps, ...); internal/sim does not read
// this struct, so changing a value here does not resize anything.
type ResourceLimits struct {
	MaxClients            int // Hard cap on connected players; also the player hash map's capacity.
	MaxHitscanProjectiles int // Fixed capacity of the in-flight hitscan list.
	MaxNadeProjectiles    int // Fixed capacity of the in-flight grenade list.
	MaxExplosions         int // Fixed capacity of the fading-explosion list.
	MaxSoundsPerTick      int // Fixed capacity of the per-tick spatial sound list.
	MaxSteps              int // Fixed capacity of the per-tick footstep list.
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxClients:            32,
		MaxHitscanProjectiles: 64,
		MaxNadeProjectiles:    64,
		MaxExplosions:         64,
		MaxSoundsPerTick:      64,
		MaxSteps:              128,
	}
}

// =============================================================================
// AUDIO CONFIGURATION
// =============================================================================

// AudioConfig holds audio mixer settings for the client's audio sink.
type AudioConfig struct {
	SampleRate int     // Audio sample rate in Hz
	Channels   int     // Number of audio channels (1=mono, 2=stereo)
	Volume     float64 // Master volume (0.0 to 1.0)
	Enabled    bool    // Whether audio is enabled
}

// DefaultAudio returns the default audio configuration.
func DefaultAudio() AudioConfig {
	return AudioConfig{
		SampleRate: 44100,
		Channels:   2,
		Volume:     0.5,
		Enabled:    true,
	}
}

// AudioFromEnv returns audio configuration with environment variable overrides.
func AudioFromEnv() AudioConfig {
	cfg := DefaultAudio()

	if v := getEnvFloat("AUDIO_VOLUME", -1); v >= 0 {
		cfg.Volume = v
	}
	if os.Getenv("AUDIO_ENABLED") == "false" {
		cfg.Enabled = false
	}

	return cfg
}

// =============================================================================
// RENDER CONFIGURATION
// =============================================================================

// RenderConfig holds the debug renderer's output settings.
type RenderConfig struct {
	Width  int
	Height int
}

// DefaultRender returns the default render configuration.
func DefaultRender() RenderConfig {
	return RenderConfig{
		Width:  1280,
		Height: 720,
	}
}

// RenderFromEnv returns render configuration with environment variable overrides.
func RenderFromEnv() RenderConfig {
	cfg := DefaultRender()

	if w := getEnvInt("RENDER_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvInt("RENDER_HEIGHT", 0); h > 0 {
		cfg.Height = h
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP/WebSocket transport settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Net    NetConfig
	Audio  AudioConfig
	Render RenderConfig
	Server ServerConfig
	Limits ResourceLimits
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Net:    NetFromEnv(),
		Audio:  AudioFromEnv(),
		Render: RenderFromEnv(),
		Server: ServerFromEnv(),
		Limits: DefaultLimits(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
