package state

import (
	"sync"
	"time"

	"github.com/arun278627862/secure-quiz/internal/db"
	"github.com/arun278627862/secure-quiz/internal/logger"
)

// Emitter fans a state-change event out to connected viewers.
type Emitter interface {
	Emit(event string, payload any)
}

const MAX_STORED_LOGS = 500
const DEFAULT_LOG_LIMIT = 50

// Controller owns the in-memory document and serializes every mutation behind
// one mutex, so two concurrent votes can never clobber each other's write.
// Each mutation appends its log entry, persists the document and only then
// broadcasts, keeping the log ahead of anything a viewer can observe.
type Controller struct {
	mu      sync.Mutex
	doc     *Document
	store   Store
	archive db.Archive
	emitter Emitter
	Logger  logger.Logger
}

func NewController(store Store, archive db.Archive, emitter Emitter) (*Controller, error) {
	doc, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Controller{
		doc:     doc,
		store:   store,
		archive: archive,
		emitter: emitter,
		Logger:  logger.New("controller"),
	}, nil
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// logEvent appends to the document tail and mirrors the entry into the
// archive. The document keeps only the newest MAX_STORED_LOGS entries, the
// archive keeps everything. Callers hold the mutex.
func (c *Controller) logEvent(eventType, details string, team *string) LogEntry {
	entry := LogEntry{
		Timestamp: timestamp(),
		Type:      eventType,
		Team:      team,
		Details:   details,
		Round:     c.doc.GameState.RoundNumber,
	}
	c.doc.Logs = append(c.doc.Logs, entry)
	if len(c.doc.Logs) > MAX_STORED_LOGS {
		c.doc.Logs = c.doc.Logs[len(c.doc.Logs)-MAX_STORED_LOGS:]
	}
	if c.archive != nil {
		archived := db.ArchivedEntry{
			Timestamp: entry.Timestamp,
			Type:      entry.Type,
			Details:   entry.Details,
			Round:     entry.Round,
		}
		if team != nil {
			archived.Team = *team
		}
		// An archive failure must not fail the operation, the repo logs it.
		_ = c.archive.AppendEntry(archived)
	}
	return entry
}

// flush persists the document. A failed save is an accepted degraded mode:
// live viewers keep receiving broadcasts while the operator sees the error.
func (c *Controller) flush() {
	if err := c.store.Save(c.doc); err != nil {
		c.Logger.Error("Failed to persist document", err)
	}
}

func (c *Controller) emit(event string, payload any) {
	if c.emitter != nil {
		c.emitter.Emit(event, payload)
	}
}

// Snapshot returns the full current state for a newly connected viewer.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		GameState: c.doc.GameState.clone(),
		Teams:     c.doc.Teams.Clone(),
		Poll:      c.doc.Poll.clone(),
	}
}

// RecentLogs returns the last limit entries in chronological order. A
// non-positive limit falls back to DEFAULT_LOG_LIMIT.
func (c *Controller) RecentLogs(limit int) []LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit <= 0 {
		limit = DEFAULT_LOG_LIMIT
	}
	logs := c.doc.Logs
	if len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	return append([]LogEntry{}, logs...)
}
