package state

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordedEvent struct {
	name    string
	payload any
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) Emit(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{name: event, payload: payload})
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, event := range r.events {
		names = append(names, event.name)
	}
	return names
}

func (r *eventRecorder) last(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i -= 1 {
		if r.events[i].name == name {
			return r.events[i].payload, true
		}
	}
	return nil, false
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func newTestController(t *testing.T) (*Controller, *eventRecorder) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	recorder := &eventRecorder{}
	control, err := NewController(store, nil, recorder)
	assert.Nil(t, err, "Failed to construct controller")
	return control, recorder
}

func TestControllerStartsFromDefaults(t *testing.T) {
	control, _ := newTestController(t)
	snapshot := control.Snapshot()
	assert.False(t, snapshot.GameState.Active)
	assert.Nil(t, snapshot.GameState.CurrentTeam)
	assert.Equal(t, 1, snapshot.GameState.RoundNumber)
	assert.Equal(t, REQUIRED_TEAM_COUNT, snapshot.Teams.Len())
	assert.False(t, snapshot.Poll.Active)
	assert.Equal(t, []string{"A", "B", "C", "D"}, snapshot.Poll.Options.Keys())
}

func TestControllerStatePersistsAcrossRestarts(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(dataFile)
	control, err := NewController(store, nil, &eventRecorder{})
	assert.Nil(t, err)
	control.StartGame()
	_, err = control.BuzzIn("team3")
	assert.Nil(t, err)

	reloaded, err := NewController(NewFileStore(dataFile), nil, &eventRecorder{})
	assert.Nil(t, err)
	game := reloaded.GameState()
	assert.True(t, game.Active)
	assert.NotNil(t, game.CurrentTeam)
	assert.Equal(t, "team3", *game.CurrentTeam)
}

func TestRecentLogsReturnsChronologicalTail(t *testing.T) {
	control, _ := newTestController(t)
	for round := 0; round < 3; round += 1 {
		control.StartGame()
		control.ResetGame()
	}
	logs := control.RecentLogs(4)
	assert.Len(t, logs, 4)
	assert.Equal(t, "game_started", logs[0].Type)
	assert.Equal(t, "game_reset", logs[3].Type)
	// Default limit kicks in for non-positive values.
	assert.Len(t, control.RecentLogs(0), 6)
}

func TestDocumentLogTailIsBounded(t *testing.T) {
	control, _ := newTestController(t)
	for i := 0; i < MAX_STORED_LOGS+25; i += 1 {
		control.logEvent("poll_vote", fmt.Sprintf("Vote cast for option %d", i), nil)
	}
	assert.Len(t, control.doc.Logs, MAX_STORED_LOGS)
	// The oldest entries are the ones dropped.
	assert.Equal(t, "Vote cast for option 25", control.doc.Logs[0].Details)
}

func TestLogEntryPrecedesBroadcast(t *testing.T) {
	control, recorder := newTestController(t)
	control.StartGame()
	names := recorder.names()
	assert.Equal(t, []string{"game_started", "log_update"}, names)
	logs := control.RecentLogs(1)
	assert.Len(t, logs, 1)
	assert.Equal(t, "Round 1 started", logs[0].Details)
}
