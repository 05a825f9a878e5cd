package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"levelup/internal/config"
	"levelup/internal/model"
	"levelup/internal/serverapp"
	"levelup/internal/telemetry"
)

type testApp struct {
	t       *testing.T
	srv     *httptest.Server
	dataDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dataDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Data.Dir = dataDir

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &testApp{t: t, srv: srv, dataDir: dataDir}
}

func (a *testApp) json(method, path string, body any, out any) *http.Response {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	if err != nil {
		a.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		a.t.Fatalf("read body: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			a.t.Fatalf("decode %s %s response %q: %v", method, path, b, err)
		}
	}
	return resp
}

func TestServer_FullDayFlow(t *testing.T) {
	app := newTestApp(t)

	// Check in, run a quest and a habit, buy a reward with the proceeds.
	resp := app.json(http.MethodPost, "/api/checkin", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkin: %d", resp.StatusCode)
	}

	var q model.Quest
	resp = app.json(http.MethodPost, "/api/quests", map[string]any{
		"name": "clear the red gate", "threat": "S",
	}, &q)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add quest: %d", resp.StatusCode)
	}

	resp = app.json(http.MethodPost, fmt.Sprintf("/api/quests/%s/complete", q.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete quest: %d", resp.StatusCode)
	}

	var h model.Habit
	resp = app.json(http.MethodPost, "/api/habits", map[string]any{"name": "morning run"}, &h)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add habit: %d", resp.StatusCode)
	}
	resp = app.json(http.MethodPost, fmt.Sprintf("/api/habits/%s/toggle", h.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle habit: %d", resp.StatusCode)
	}

	var rw model.Reward
	resp = app.json(http.MethodPost, "/api/rewards", map[string]any{"name": "episode", "cost": 50}, &rw)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add reward: %d", resp.StatusCode)
	}
	resp = app.json(http.MethodPost, fmt.Sprintf("/api/rewards/%s/buy", rw.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("buy reward: %d", resp.StatusCode)
	}

	// 50 login + 100 quest + 10 habit XP; 100 quest + 5 habit gold - 50 spent.
	var doc model.State
	app.json(http.MethodGet, "/api/state", nil, &doc)
	if doc.Player.TotalXP != 160 {
		t.Fatalf("total xp = %d, want 160", doc.Player.TotalXP)
	}
	if doc.Player.Gold != 55 {
		t.Fatalf("gold = %d, want 55", doc.Player.Gold)
	}

	// State survives on disk and telemetry landed in SQLite.
	if _, err := os.Stat(filepath.Join(app.dataDir, "state.json")); err != nil {
		t.Fatalf("state file missing: %v", err)
	}
	var stats telemetry.Stats
	resp = app.json(http.MethodGet, "/api/stats", nil, &stats)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: %d", resp.StatusCode)
	}
	if stats.QuestsCompleted != 1 || stats.CheckIns != 1 || stats.RewardsBought != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestServer_ConfigEndpointReflectsBalance(t *testing.T) {
	app := newTestApp(t)

	var cfg config.Config
	resp := app.json(http.MethodGet, "/api/config", nil, &cfg)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("config: %d", resp.StatusCode)
	}
	if cfg.Balance.QuestBaseReward != 50 {
		t.Fatalf("quest base reward = %d, want 50", cfg.Balance.QuestBaseReward)
	}
}
