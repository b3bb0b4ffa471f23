package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	sess := Session{UserID: 7, Username: "jane", FullName: "Jane Doe", Email: "jane@x.com", Role: RoleIndividual}

	id, err := store.Create(ctx, sess)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := store.Read(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, sess, *got)

	updated := sess
	updated.FullName = "Jane Q. Doe"
	assert.NoError(t, store.Update(ctx, id, updated))
	got, err = store.Read(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", got.FullName)

	assert.NoError(t, store.Destroy(ctx, id))
	_, err = store.Read(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// destroy is idempotent
	assert.NoError(t, store.Destroy(ctx, id))
}

func TestMemoryStore_UnguessableIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := store.Create(ctx, Session{UserID: uint(i)})
		assert.NoError(t, err)
		assert.False(t, seen[id], "session id repeated")
		seen[id] = true
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Millisecond)

	id, err := store.Create(ctx, Session{UserID: 1})
	assert.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = store.Read(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_UnknownID(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	_, err := store.Read(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
