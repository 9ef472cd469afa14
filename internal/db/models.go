package db

type ArchivedEntry struct {
	Id        int64  `db:"id"`
	Timestamp string `db:"timestamp"`
	Type      string `db:"type"`
	Team      string `db:"team"`
	Details   string `db:"details"`
	Round     int    `db:"round"`
}
