package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/stretchr/testify/require"
)

// TestEventLifecycle walks a full run: two users, one event, a shared photo
// batch, a creator moderating a photo, and finally the creator tearing the
// event down.
func TestEventLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "Alice", "alice@example.com")
	bob := env.registerUser(t, "Bob", "bob@example.com")

	event := env.createEvent(t, alice, "Road Trip", "pw1234")

	// Bob joins with the invite code Alice shares.
	joined, already, err := env.events.Join(bob.User.ID, &dto.JoinEventRequest{
		InviteCode: event.InviteCode,
		Password:   "pw1234",
	})
	require.NoError(t, err)
	require.False(t, already)
	require.Equal(t, event.ID, joined.ID)

	// Bob uploads two photos.
	resp, err := env.photos.Upload(ctx, bob.User.ID, event.ID, []UploadFile{
		uploadFile("sunrise.jpg", "image/jpeg", "jpeg-bytes-1"),
		uploadFile("sunset.jpg", "image/jpeg", "jpeg-bytes-2"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Photos, 2)
	require.True(t, strings.HasPrefix(resp.Message, "2 photo(s)"))

	// Alice, as creator, removes one of Bob's photos.
	require.NoError(t, env.photos.Delete(ctx, alice.User.ID, resp.Photos[0].ID))

	detail, err := env.events.Detail(bob.User.ID, event.ID)
	require.NoError(t, err)
	require.Len(t, detail.Photos, 1)
	require.Len(t, detail.Participants, 2)
	require.Equal(t, "Bob", detail.Photos[0].UploaderName)

	// Alice deletes the event; everything it owned goes with it.
	require.NoError(t, env.events.Delete(ctx, alice.User.ID, event.ID))
	require.Zero(t, env.store.stored())

	_, err = env.events.Detail(bob.User.ID, event.ID)
	require.ErrorIs(t, err, ErrNotMember)

	// Both dashboards are empty again.
	for _, user := range []*dto.AuthResponse{alice, bob} {
		events, err := env.events.ListForUser(user.User.ID)
		require.NoError(t, err)
		require.Empty(t, events)
	}
}
