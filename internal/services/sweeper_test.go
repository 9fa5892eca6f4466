package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpiredPurgesOnlyLapsedEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.registerUser(t, "Alice", "alice@example.com")

	lapsed := env.createEvent(t, alice, "Lapsed", "pw1234")
	live := env.createEvent(t, alice, "Live", "pw1234")
	env.expireEvent(t, lapsed.ID)

	_, err := env.photos.Upload(ctx, alice.User.ID, live.ID, []UploadFile{
		uploadFile("keep.jpg", "image/jpeg", "aaa"),
	})
	require.NoError(t, err)

	purged, err := env.events.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	var lapsedRows, liveRows int64
	env.db.Model(&models.Event{}).Where("id = ?", lapsed.ID).Count(&lapsedRows)
	env.db.Model(&models.Event{}).Where("id = ?", live.ID).Count(&liveRows)
	assert.Zero(t, lapsedRows)
	assert.EqualValues(t, 1, liveRows)
	assert.Equal(t, 1, env.store.stored())
}

func TestCleanupExpiredIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.registerUser(t, "Alice", "alice@example.com")

	event := env.createEvent(t, alice, "Lapsed", "pw1234")
	_, err := env.photos.Upload(ctx, alice.User.ID, event.ID, []UploadFile{
		uploadFile("gone.jpg", "image/jpeg", "aaa"),
	})
	require.NoError(t, err)
	env.expireEvent(t, event.ID)

	purged, err := env.events.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	// Second sweep finds nothing and does not error
	purged, err = env.events.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestSweeperSweep(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "Alice", "alice@example.com")
	event := env.createEvent(t, alice, "Lapsed", "pw1234")
	env.expireEvent(t, event.ID)

	sweeper := NewSweeper(env.events, time.Hour)
	sweeper.Sweep(context.Background())

	var rows int64
	env.db.Model(&models.Event{}).Where("id = ?", event.ID).Count(&rows)
	assert.Zero(t, rows)
}
