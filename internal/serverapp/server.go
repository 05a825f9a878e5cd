// Package serverapp assembles the HTTP surface: engine construction, route
// registration and the middleware chain.
package serverapp

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"levelup/internal/app"
	"levelup/internal/config"
	"levelup/internal/events"
	"levelup/internal/habit"
	"levelup/internal/httpmw"
	"levelup/internal/model"
	"levelup/internal/player"
	"levelup/internal/quest"
	"levelup/internal/reward"
	"levelup/internal/state"
	"levelup/internal/telemetry"
)

type Options struct {
	Config  *config.Config
	DataDir string // overrides Config.Data.Dir when set
	Logger  *log.Logger

	// Engine overrides the default wiring; tests use this with a fake clock.
	Engine *app.Engine
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	dataDir := opts.DataDir
	if strings.TrimSpace(dataDir) == "" {
		dataDir = opts.Config.Data.Dir
	}

	engine := opts.Engine
	if engine == nil {
		repo, err := state.NewFileRepo(dataDir, time.Now())
		if err != nil {
			return nil, err
		}

		telemetryPath := opts.Config.Data.TelemetryDB
		if strings.TrimSpace(telemetryPath) == "" {
			telemetryPath = filepath.Join(dataDir, "telemetry.db")
		}
		audit, err := telemetry.OpenSQLite(telemetryPath)
		if err != nil {
			return nil, err
		}

		engine = &app.Engine{
			States:    repo,
			Balance:   opts.Config.Balance,
			Telemetry: audit,
			Notifier:  events.LogNotifier{Logger: opts.Logger},
			Clock:     app.RealClock{},
		}
	}

	s := &server{engine: engine, cfg: opts.Config}
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		s.routes = append(s.routes, pattern)
		mux.HandleFunc(pattern, h)
	}

	handle("GET /healthz", s.healthz)
	handle("GET /readyz", s.readyz)

	handle("GET /api/state", s.getState)
	handle("GET /api/config", s.getConfig)
	handle("GET /api/routes", s.listRoutes)

	handle("GET /api/quests", s.listQuests)
	handle("POST /api/quests", s.addQuest)
	handle("DELETE /api/quests/{id}", s.deleteQuest)
	handle("POST /api/quests/{id}/complete", s.completeQuest)
	handle("POST /api/quests/{id}/fail", s.failQuest)
	handle("POST /api/quests/{id}/undo", s.undoQuest)

	handle("POST /api/habits", s.addHabit)
	handle("DELETE /api/habits/{id}", s.deleteHabit)
	handle("POST /api/habits/{id}/toggle", s.toggleHabit)

	handle("POST /api/rewards", s.addReward)
	handle("DELETE /api/rewards/{id}", s.deleteReward)
	handle("POST /api/rewards/{id}/buy", s.buyReward)

	handle("POST /api/checkin", s.checkIn)
	handle("POST /api/rollover", s.rollover)
	handle("POST /api/reset", s.reset)

	handle("GET /api/export", s.export)
	handle("POST /api/import", s.importState)
	handle("GET /api/stats", s.stats)

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

type server struct {
	engine *app.Engine
	cfg    *config.Config
	routes []string
}

func (s *server) listRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"routes": s.routes})
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": state.AppName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *server) readyz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.engine.State(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":    false,
			"error": "state storage unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": state.AppName,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *server) getState(w http.ResponseWriter, r *http.Request) {
	doc, err := s.engine.State()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

func (s *server) listQuests(w http.ResponseWriter, r *http.Request) {
	qs, err := s.engine.ActiveQuests()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quests": qs})
}

func (s *server) addQuest(w http.ResponseWriter, r *http.Request) {
	var d quest.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json body"})
		return
	}
	q, err := s.engine.AddQuest(d)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *server) completeQuest(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.CompleteQuest(model.QuestID(r.PathValue("id")))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) failQuest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason model.FailReason `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	res, err := s.engine.FailQuest(model.QuestID(r.PathValue("id")), body.Reason)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) undoQuest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompletedAt time.Time `json:"completed_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CompletedAt.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "completed_at is required"})
		return
	}
	res, err := s.engine.UndoQuest(model.QuestID(r.PathValue("id")), body.CompletedAt)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) deleteQuest(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteQuest(model.QuestID(r.PathValue("id"))); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *server) addHabit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json body"})
		return
	}
	h, err := s.engine.AddHabit(body.Name, body.Icon)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteHabit(model.HabitID(r.PathValue("id"))); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *server) toggleHabit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"` // YYYY-MM-DD; empty means today
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	res, err := s.engine.ToggleHabit(model.HabitID(r.PathValue("id")), body.Date)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) addReward(w http.ResponseWriter, r *http.Request) {
	var d reward.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json body"})
		return
	}
	rw, err := s.engine.AddReward(d)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rw)
}

func (s *server) deleteReward(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteReward(model.RewardID(r.PathValue("id"))); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *server) buyReward(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.BuyReward(model.RewardID(r.PathValue("id")))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) checkIn(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.CheckIn()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) rollover(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.Rollover()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) reset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reset(); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

func (s *server) export(w http.ResponseWriter, r *http.Request) {
	b, err := s.engine.Export()
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="levelup-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *server) importState(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "body too large or unreadable"})
		return
	}
	if err := s.engine.Import(b); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": true})
}

func (s *server) stats(w http.ResponseWriter, r *http.Request) {
	since := time.Now().AddDate(0, 0, -30)
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		t, err := model.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "since must be YYYY-MM-DD"})
			return
		}
		since = t
	}
	st, err := s.engine.Stats(since)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps domain sentinels onto HTTP statuses; anything unrecognized
// is a 400 so a typo'd request never reads as a server fault.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, quest.ErrNotFound),
		errors.Is(err, quest.ErrEntryNotFound),
		errors.Is(err, habit.ErrNotFound),
		errors.Is(err, reward.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, reward.ErrInsufficientGold):
		code = http.StatusPaymentRequired
	case errors.Is(err, quest.ErrNotActive),
		errors.Is(err, quest.ErrUndoLocked),
		errors.Is(err, player.ErrAlreadyCheckedIn):
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]any{"error": err.Error()})
}
