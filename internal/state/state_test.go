package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelup/internal/model"
)

var testNow = time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local)

func TestFileRepo_FreshDirGetsDefaults(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir(), testNow)
	require.NoError(t, err)

	s := repo.Get()
	assert.Equal(t, model.SchemaVersion, s.Version)
	assert.Equal(t, model.DefaultPlayerName, s.Player.Name)
	assert.Empty(t, s.Quests)
}

func TestFileRepo_PutThenReload(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir, testNow)
	require.NoError(t, err)

	s := repo.Get()
	s.Player.TotalXP = 777
	s.Habits = append(s.Habits, model.Habit{ID: "habit_x", Name: "stretch"})
	require.NoError(t, repo.Put(s))

	// Mutating the put document afterwards must not leak into the repo.
	s.Player.TotalXP = 0
	assert.Equal(t, 777, repo.Get().Player.TotalXP)

	again, err := NewFileRepo(dir, testNow)
	require.NoError(t, err)
	reloaded := again.Get()
	assert.Equal(t, 777, reloaded.Player.TotalXP)
	require.Len(t, reloaded.Habits, 1)
	assert.Equal(t, "stretch", reloaded.Habits[0].Name)
}

func TestFileRepo_DedupsQuestLogOnLoad(t *testing.T) {
	dir := t.TempDir()
	done := testNow.Add(-time.Hour)
	other := testNow.Add(-2 * time.Hour)
	doc := model.NewState(testNow)
	entry := model.Quest{ID: "quest_a", Name: "a", Threat: model.ThreatB, Completed: true, CompletedAt: &done}
	doc.QuestLog = []model.Quest{
		entry,
		entry, // duplicate (id, completed_at)
		{ID: "quest_a", Name: "a", Threat: model.ThreatB, Completed: true, CompletedAt: &other}, // same id, different time: kept
	}
	writeDoc(t, dir, doc)

	repo, err := NewFileRepo(dir, testNow)
	require.NoError(t, err)
	assert.Len(t, repo.Get().QuestLog, 2)
}

func TestFileRepo_RejectsCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{nope"), 0o644))
	_, err := NewFileRepo(dir, testNow)
	assert.Error(t, err)
}

func TestMigrate_V1GainsStreaksAndSettings(t *testing.T) {
	yesterday := model.DateOf(testNow.AddDate(0, 0, -1))
	today := model.DateOf(testNow)
	s := &model.State{
		Version: 1,
		Habits:  []model.Habit{{ID: "habit_a", Name: "meditate"}},
		HabitLog: map[string][]model.HabitID{
			yesterday: {"habit_a"},
			today:     {"habit_a"},
		},
	}

	require.NoError(t, Migrate(s, testNow))
	assert.Equal(t, model.SchemaVersion, s.Version)
	assert.Equal(t, 2, s.Streaks["habit_a"])
	assert.NotEmpty(t, s.Settings.TabOrder)
}

func TestMigrate_RejectsFutureVersion(t *testing.T) {
	s := &model.State{Version: model.SchemaVersion + 1}
	assert.Error(t, Migrate(s, testNow))
}

func TestValidate_CatchesBadDocuments(t *testing.T) {
	cases := map[string]*model.State{
		"empty quest id":     {Quests: []model.Quest{{ID: "", Name: "x", Threat: model.ThreatB}}},
		"bad threat":         {Quests: []model.Quest{{ID: "q1", Name: "x", Threat: "Z"}}},
		"completed and failed": {Quests: []model.Quest{
			{ID: "q1", Name: "x", Threat: model.ThreatB, Completed: true, Failed: true},
		}},
		"bad log date": {HabitLog: map[string][]model.HabitID{"03/10/2026": {}}},
		"free reward":  {Rewards: []model.Reward{{ID: "r1", Name: "x", Cost: 0}}},
	}
	for name, s := range cases {
		assert.Error(t, Validate(s), name)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := model.NewState(testNow)
	s.Player.TotalXP = 1234
	s.Settings.SoundEnabled = false
	s.Settings.TabOrder = []string{"habits", "quests", "rewards", "profile"}

	b, err := ExportJSON(s, testNow)
	require.NoError(t, err)

	got, err := Import(b, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1234, got.Player.TotalXP)
	assert.False(t, got.Settings.SoundEnabled)
	assert.Equal(t, s.Settings.TabOrder, got.Settings.TabOrder)
}

func TestImport_RejectsForeignApp(t *testing.T) {
	doc := ExportDoc{Version: 1, ExportedAt: testNow, AppName: "someone-elses-app", Data: *model.NewState(testNow)}
	b, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = Import(b, testNow)
	assert.ErrorIs(t, err, ErrWrongApp)
}

func TestImport_RejectsMissingData(t *testing.T) {
	b := []byte(`{"version":1,"app_name":"` + AppName + `"}`)
	_, err := Import(b, testNow)
	assert.ErrorIs(t, err, ErrNoData)

	b = []byte(`{"version":1,"app_name":"` + AppName + `","data":null}`)
	_, err = Import(b, testNow)
	assert.ErrorIs(t, err, ErrNoData)
}

func writeDoc(t *testing.T, dir string, s *model.State) {
	t.Helper()
	b, err := json.MarshalIndent(s, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), b, 0o644))
}
