package db

import (
	"github.com/arun278627862/secure-quiz/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

// Archive keeps the full event-log history. The JSON document only retains a
// bounded tail, the archive never drops entries.
type Archive interface {
	SetupConnection(database string) error
	CloseConnection()
	AppendEntry(entry ArchivedEntry) error
	RecentEntries(limit int) ([]ArchivedEntry, error)
}

func SetupDB(dbName string) (Archive, error) {
	var archive Archive = &SqliteStore{
		Logger: logger.New("archive"),
	}
	err := archive.SetupConnection(dbName)
	return archive, err
}
