// Package state persists a small record of past send batches under the
// operator's home directory. History is best-effort; a failed write never
// fails a send.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const (
	stateDirName  = ".mnctl"
	stateFileName = "state.json"
	maxHistory    = 50
)

// Batch summarizes one completed send run.
type Batch struct {
	Time     time.Time `json:"time"`
	Filters  []string  `json:"filters,omitempty"`
	Template string    `json:"template"`
	Sent     int       `json:"sent"`
	Skipped  int       `json:"skipped"`
}

type Store struct {
	History []Batch `json:"history,omitempty"`
}

func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, stateDirName, stateFileName), nil
}

func Load() (*Store, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Store{}, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return &Store{}, nil
	}
	var s Store
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func Save(s *Store) error {
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// RecordBatch prepends b to the history, keeping the newest maxHistory
// entries.
func (s *Store) RecordBatch(b Batch) {
	out := make([]Batch, 0, len(s.History)+1)
	out = append(out, b)
	out = append(out, s.History...)
	if len(out) > maxHistory {
		out = out[:maxHistory]
	}
	s.History = out
}

func (s *Store) ClearHistory() {
	s.History = nil
}
