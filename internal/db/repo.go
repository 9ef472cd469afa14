package db

import (
	"fmt"

	"github.com/arun278627862/secure-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
)

var schema = `CREATE TABLE IF NOT EXISTS event_log (
  id integer PRIMARY KEY AUTOINCREMENT,
  timestamp varchar NOT NULL,
  type varchar(32) NOT NULL,
  team varchar(16) DEFAULT '' NOT NULL,
  details varchar NOT NULL,
  round int DEFAULT 1 NOT NULL
);`

type SqliteStore struct {
	Conn   *sqlx.DB
	Logger logger.Logger
}

func (s *SqliteStore) SetupConnection(dbname string) error {
	sqlite_dbfile := dbname + ".db"
	db, err := sqlx.Connect("sqlite3", sqlite_dbfile)
	if err != nil {
		s.Logger.Error("Database setup failed", err)
		return err
	}
	s.Conn = db
	s.Conn.MustExec(schema)
	s.Logger.Info(fmt.Sprintf("Database %s setup successfully", sqlite_dbfile))
	return nil
}

func (s *SqliteStore) CloseConnection() {
	s.Logger.Info("Closing database connection")
	if err := s.Conn.Close(); err != nil {
		s.Logger.Error("Failed to tear down database connection", err)
		return
	}
	s.Logger.Info("Database connection closed successfully")
}

func (s *SqliteStore) AppendEntry(entry ArchivedEntry) error {
	sql := `INSERT INTO event_log(timestamp, type, team, details, round) VALUES(?, ?, ?, ?, ?);`
	_, err := s.Conn.Exec(sql, entry.Timestamp, entry.Type, entry.Team, entry.Details, entry.Round)
	if err != nil {
		s.Logger.Error("Failed to archive log entry", err)
		return err
	}
	return nil
}

// RecentEntries returns the newest entries in chronological order.
func (s *SqliteStore) RecentEntries(limit int) ([]ArchivedEntry, error) {
	entries := []ArchivedEntry{}
	sql := `SELECT * FROM event_log ORDER BY id DESC LIMIT ?;`
	err := s.Conn.Select(&entries, sql, limit)
	if err != nil {
		s.Logger.Error("Failed to fetch archived log entries", err)
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
