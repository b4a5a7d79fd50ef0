package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tickarena/internal/api"
	"tickarena/internal/serverauth"
)

// mockStatus implements api.StatusProvider for testing.
type mockStatus struct {
	stats serverauth.Stats
}

func (m *mockStatus) Stats() serverauth.Stats { return m.stats }

func TestNewRouterHasNoSideEffects(t *testing.T) {
	router := api.NewRouter(api.RouterConfig{
		Status: &mockStatus{},
		RateLimitConfig: &api.RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   time.Hour,
		},
		DisableLogging: true,
	})
	if router == nil {
		t.Fatal("router should not be nil")
	}
}

func TestAPIGetState(t *testing.T) {
	status := &mockStatus{stats: serverauth.Stats{PlayerCount: 3, AliveCount: 2, SimTick: 120, NetTick: 20}}
	router := api.NewRouter(api.RouterConfig{Status: status, DisableLogging: true})

	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if int(result["playerCount"].(float64)) != 3 {
		t.Errorf("expected playerCount 3, got %v", result["playerCount"])
	}
	if int(result["aliveCount"].(float64)) != 2 {
		t.Errorf("expected aliveCount 2, got %v", result["aliveCount"])
	}
}

func TestAPIGetStats(t *testing.T) {
	status := &mockStatus{stats: serverauth.Stats{PlayerCount: 1, AliveCount: 1, SimTick: 5, NetTick: 1}}
	router := api.NewRouter(api.RouterConfig{Status: status, DisableLogging: true})

	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		Sim         serverauth.Stats  `json:"sim"`
		RateLimiter map[string]uint64 `json:"rateLimiter"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Sim.SimTick != 5 {
		t.Errorf("expected simTick 5, got %d", result.Sim.SimTick)
	}
	if result.RateLimiter == nil {
		t.Error("expected rate limiter stats to be present")
	}
}

func TestAPICORSHeaders(t *testing.T) {
	router := api.NewRouter(api.RouterConfig{
		Status:         &mockStatus{},
		DisableLogging: true,
		CORSOrigins:    []string{"http://test.example.com"},
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	req, _ := http.NewRequest("GET", ts.URL+"/api/state", nil)
	req.Header.Set("Origin", "http://test.example.com")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://test.example.com" {
		t.Errorf("expected Access-Control-Allow-Origin %q, got %q", "http://test.example.com", got)
	}
}

func TestAPIRateLimiting(t *testing.T) {
	router := api.NewRouter(api.RouterConfig{
		Status: &mockStatus{},
		RateLimitConfig: &api.RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
			CleanupInterval:   time.Hour,
		},
		DisableLogging: true,
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	var gotRateLimited bool
	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL + "/api/state")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			gotRateLimited = true
			break
		}
	}
	if !gotRateLimited {
		t.Error("expected to be rate limited after burst exceeded")
	}
}

func TestAPIRedirects(t *testing.T) {
	router := api.NewRouter(api.RouterConfig{Status: &mockStatus{}, DisableLogging: true})

	ts := httptest.NewServer(router)
	defer ts.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Errorf("expected 302 redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/api/state" {
		t.Errorf("expected redirect to /api/state, got %s", loc)
	}
}
