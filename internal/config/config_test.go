package config

import "testing"

func TestDefaultNet(t *testing.T) {
	cfg := DefaultNet()
	if cfg.FPS != 60 {
		t.Errorf("expected default FPS 60, got %d", cfg.FPS)
	}
	if cfg.NetPerSim != 2 {
		t.Errorf("expected default NetPerSim 2, got %d", cfg.NetPerSim)
	}
}

func TestNetFromEnvOverridesFPS(t *testing.T) {
	t.Setenv("SIM_FPS", "30")
	cfg := NetFromEnv()
	if cfg.FPS != 30 {
		t.Errorf("expected FPS overridden to 30, got %d", cfg.FPS)
	}
}

func TestNetFromEnvIgnoresInvalidValue(t *testing.T) {
	t.Setenv("SIM_FPS", "not-a-number")
	cfg := NetFromEnv()
	if cfg.FPS != DefaultNet().FPS {
		t.Errorf("expected default FPS to survive invalid override, got %d", cfg.FPS)
	}
}

func TestAudioFromEnvDisable(t *testing.T) {
	t.Setenv("AUDIO_ENABLED", "false")
	cfg := AudioFromEnv()
	if cfg.Enabled {
		t.Error("expected audio disabled by AUDIO_ENABLED=false")
	}
}

func TestAudioFromEnvVolumeOverride(t *testing.T) {
	t.Setenv("AUDIO_VOLUME", "0.75")
	cfg := AudioFromEnv()
	if cfg.Volume != 0.75 {
		t.Errorf("expected volume 0.75, got %v", cfg.Volume)
	}
}

func TestServerFromEnvPortOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg := ServerFromEnv()
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
}

func TestLoadComposesAllSections(t *testing.T) {
	cfg := Load()
	if cfg.Net.FPS == 0 || cfg.Server.Port == 0 || cfg.Limits.MaxClients == 0 {
		t.Errorf("expected every config section populated, got %+v", cfg)
	}
}
