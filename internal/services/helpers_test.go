package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testRetention = 7 * 24 * time.Hour

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would get its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Membership{},
		&models.Photo{},
	))
	return db
}

// fakeStore is an in-memory BlobStore. putFailures fails that many leading
// Put calls; failDelete fails every Delete.
type fakeStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	deleted     []string
	putFailures int
	failDelete  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putFailures > 0 {
		f.putFailures--
		return errors.New("storage unavailable")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, key)
	if f.failDelete {
		return errors.New("storage unavailable")
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "http://blobs.test/momentpick-photos/" + key
}

func (f *fakeStore) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type testEnv struct {
	db     *gorm.DB
	store  *fakeStore
	auth   *AuthService
	events *EventService
	photos *PhotoService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	store := newFakeStore()
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		TokenExpiry:    time.Hour,
		EventRetention: testRetention,
	}

	members := NewMembershipService(db)
	policy := authz.New(members)

	return &testEnv{
		db:     db,
		store:  store,
		auth:   NewAuthService(db, cfg),
		events: NewEventService(db, members, policy, store, testRetention),
		photos: NewPhotoService(db, policy, store),
	}
}

func (e *testEnv) registerUser(t *testing.T, name, email string) *dto.AuthResponse {
	t.Helper()

	resp, err := e.auth.Register(&dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "hunter2pass",
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) createEvent(t *testing.T, creator *dto.AuthResponse, name, password string) *dto.EventResponse {
	t.Helper()

	event, err := e.events.Create(creator.User.ID, &dto.CreateEventRequest{
		Name:     name,
		Password: password,
	})
	require.NoError(t, err)
	return event
}

// expireEvent pushes an event's expiry into the past.
func (e *testEnv) expireEvent(t *testing.T, eventID any) {
	t.Helper()

	err := e.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)
}
