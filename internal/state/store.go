package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/arun278627862/secure-quiz/internal/logger"
)

// Store persists the whole document in one shot. There are no partial writes.
type Store interface {
	Load() (*Document, error)
	Save(doc *Document) error
}

type FileStore struct {
	path   string
	Logger logger.Logger
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		Logger: logger.New("file_store"),
	}
}

// Load reads the data file, falling back to the canonical default document
// when the file is missing or unreadable. The fallback is written back so the
// file exists from the first run onwards.
func (f *FileStore) Load() (*Document, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := DefaultDocument()
		return doc, f.Save(doc)
	}
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		f.Logger.Error("Data file is corrupt, starting from defaults", err)
		doc = DefaultDocument()
		return doc, f.Save(doc)
	}
	return doc, nil
}

func (f *FileStore) Save(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0644)
}
