package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore persists the current session as a JSON file, for CLI use where
// consecutive invocations should share a session id.
type FileStore struct {
	path string
	ttl  time.Duration
}

// NewFileStore creates a file-backed session store rooted at baseDir. An
// empty baseDir uses ~/.config/flowcopy/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "flowcopy")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &FileStore{
		path: filepath.Join(baseDir, "session.json"),
		ttl:  DefaultTTL,
	}, nil
}

// Current returns the stored session if it is still valid for the given
// account, or mints and persists a fresh one.
func (st *FileStore) Current(accountID string) (*Session, error) {
	if sess, err := st.load(); err == nil &&
		!sess.IsExpired() && sess.AccountID == accountID {
		return sess, nil
	}

	sess := New(accountID, st.ttl)
	if err := st.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Clear removes the stored session.
func (st *FileStore) Clear() error {
	err := os.Remove(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (st *FileStore) load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (st *FileStore) save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, data, 0o600)
}
