// Package prefs remembers view choices between runs.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/toml"
)

const prefsFile = "prefs.toml"

// Prefs are the sticky view settings. Zero values mean defaults.
type Prefs struct {
	WorkerSort     string `toml:"worker_sort"`
	WorkerSortDesc bool   `toml:"worker_sort_desc"`
	StatusFilter   string `toml:"status_filter"`
	TeamFilter     string `toml:"team_filter"`
	GPSRange       string `toml:"gps_range"`
}

// Store reads and writes Prefs at Path. Saves are serialised, and a save
// stamped older than the one already on disk is dropped.
type Store struct {
	Path string

	gen     atomic.Uint64
	mu      sync.Mutex
	written uint64
}

// DefaultStore keeps prefs under the user config dir.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{Path: filepath.Join(dir, "fieldops", prefsFile)}, nil
}

// Load returns zero Prefs when the file does not exist yet.
func (s *Store) Load() (Prefs, error) {
	var p Prefs
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, err
	}
	if _, err := toml.Decode(string(data), &p); err != nil {
		return Prefs{}, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return p, nil
}

// Stamp reserves the next save generation. Take it when the choice is made,
// not when the write runs.
func (s *Store) Stamp() uint64 {
	return s.gen.Add(1)
}

// Save writes p now.
func (s *Store) Save(p Prefs) error {
	_, err := s.SaveStamped(s.Stamp(), p)
	return err
}

// SaveStamped writes p atomically through a temp file in the same directory
// unless a newer stamp has already been written. It reports whether p was
// written.
func (s *Store) SaveStamped(stamp uint64, p Prefs) (bool, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stamp <= s.written {
		return false, nil
	}
	if err := s.write(buf.Bytes()); err != nil {
		return false, err
	}
	s.written = stamp
	return true, nil
}

func (s *Store) write(data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, prefsFile+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
