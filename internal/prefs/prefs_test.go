package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsZero(t *testing.T) {
	t.Parallel()
	s := &Store{Path: filepath.Join(t.TempDir(), "nope", "prefs.toml")}
	p, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, Prefs{}, p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	s := &Store{Path: filepath.Join(t.TempDir(), "fieldops", "prefs.toml")}
	want := Prefs{WorkerSort: "kms", WorkerSortDesc: true, StatusFilter: "present", TeamFilter: "Cambridge Press", GPSRange: "week"}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(s.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "prefs.toml", entries[0].Name())
}

func TestConcurrentSavesAllSucceed(t *testing.T) {
	t.Parallel()
	s := &Store{Path: filepath.Join(t.TempDir(), "prefs.toml")}

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Save(Prefs{WorkerSort: fmt.Sprintf("col%d", i)})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.Load()
	require.NoError(t, err)
	require.Contains(t, got.WorkerSort, "col")
	entries, err := os.ReadDir(filepath.Dir(s.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestOlderStampIsDropped(t *testing.T) {
	t.Parallel()
	s := &Store{Path: filepath.Join(t.TempDir(), "prefs.toml")}
	first, second := s.Stamp(), s.Stamp()

	wrote, err := s.SaveStamped(second, Prefs{StatusFilter: "absent"})
	require.NoError(t, err)
	require.True(t, wrote)
	wrote, err = s.SaveStamped(first, Prefs{StatusFilter: "present"})
	require.NoError(t, err)
	require.False(t, wrote)

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "absent", got.StatusFilter)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("worker_sort = ["), 0o600))
	_, err := (&Store{Path: path}).Load()
	require.Error(t, err)
}
