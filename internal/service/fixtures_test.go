package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/model"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/lshigami/examguard/internal/storage"
	"github.com/lshigami/examguard/internal/testutil"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	fs       afero.Fs
	files    *storage.LocalStore
	tests    repository.TestRepository
	results  repository.ResultRepository
	focus    repository.FocusLogRepository
	shots    repository.ScreenshotRepository
	student  *model.User
	intruder *model.User
	admin    *model.User
	algebra  *model.Test
	geometry *model.Test
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	fs := afero.NewMemMapFs()
	f := &fixture{
		db:      db,
		fs:      fs,
		files:   storage.NewLocalStoreFs(fs, "/srv/app", "media"),
		tests:   repository.NewTestRepository(db),
		results: repository.NewResultRepository(db),
		focus:   repository.NewFocusLogRepository(db),
		shots:   repository.NewScreenshotRepository(db),
	}
	f.student = testutil.SeedUser(t, db, "student", "secret1", false)
	f.intruder = testutil.SeedUser(t, db, "mallory", "secret2", false)
	f.admin = testutil.SeedUser(t, db, "admin", "secret3", true)
	f.algebra = testutil.SeedTest(t, db, "Algebra", "media/tests_files/algebra.html")
	f.geometry = testutil.SeedTest(t, db, "Geometry", "media/tests_files/geometry.html")
	return f
}

func identityOf(u *model.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Username: u.Username, IsSuperuser: u.IsSuperuser}
}

func (f *fixture) resultService() *resultService {
	s := NewResultService(f.tests, f.results).(*resultService)
	s.now = func() time.Time { return fixedNow }
	return s
}

// fakeNotifier records what would have gone to the administrator chat.
type fakeNotifier struct {
	mu       sync.Mutex
	enabled  bool
	err      error
	captions []string
	photos   [][]byte
	messages []string
}

func (n *fakeNotifier) Enabled() bool { return n.enabled }

func (n *fakeNotifier) SendMessage(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return n.err
}

func (n *fakeNotifier) SendPhoto(_ context.Context, caption, _ string, photo io.Reader) error {
	data, _ := io.ReadAll(photo)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.captions = append(n.captions, caption)
	n.photos = append(n.photos, data)
	return n.err
}
