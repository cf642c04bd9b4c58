package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"jobhub_backend/internal/config"
	"jobhub_backend/internal/notify"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/storage"
	"jobhub_backend/internal/validator"
)

// The service suites run once per backend: the store contract must hold
// regardless of which repository variant is active.
var testBackends = []string{config.BackendLocal, config.BackendSQLite}

func storeConfig(backend, dir string) config.StoreConfig {
	return config.StoreConfig{
		Backend:  backend,
		BasePath: dir,
		DSN:      filepath.Join(dir, "test.db"),
	}
}

// openRepos builds a fresh repository set over dir. Calling it twice with the
// same dir simulates a process restart against the same durable state.
func openRepos(t *testing.T, backend, dir string) *repositories.Set {
	t.Helper()

	blobs, err := storage.NewLocalBlobStore(dir)
	require.NoError(t, err)

	set, err := repositories.New(context.Background(), storeConfig(backend, dir), blobs)
	require.NoError(t, err)
	return set
}

func newTestRepos(t *testing.T, backend string) (*repositories.Set, string) {
	t.Helper()
	dir := t.TempDir()
	return openRepos(t, backend, dir), dir
}

// writeBlobFile plants raw blob content, bypassing the store, to simulate
// corrupt or legacy data on disk.
func writeBlobFile(t *testing.T, dir, key string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json"), data, 0644))
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (r *recordingNotifier) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recordingNotifier) last() (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return notify.Notification{}, false
	}
	return r.notes[len(r.notes)-1], true
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

func newAuthForTest(t *testing.T, repos *repositories.Set, notifier notify.Notifier) AuthService {
	t.Helper()
	auth, err := NewAuthService(context.Background(), repos.Credentials, repos.Sessions, validator.New(), notifier)
	require.NoError(t, err)
	return auth
}

func newJobsForTest(t *testing.T, repos *repositories.Set, notifier notify.Notifier, seed bool) JobService {
	t.Helper()
	jobs, err := NewJobService(context.Background(), repos.Records, validator.New(), notifier, seed)
	require.NoError(t, err)
	return jobs
}
