package localsearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/localsearch/blobstore"
	"github.com/hupe1980/localsearch/index"
)

func TestService_CreateAndGet(t *testing.T) {
	svc := NewService()

	created, err := svc.CreateIndex("settings", index.BackendLinear)
	require.NoError(t, err)

	got, err := svc.GetIndex("settings")
	require.NoError(t, err)
	assert.Same(t, created, got)

	_, err = svc.GetIndex("missing")
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestService_DuplicateRegistration(t *testing.T) {
	svc := NewService()

	_, err := svc.CreateIndex("settings", index.BackendLinear)
	require.NoError(t, err)

	_, err = svc.CreateIndex("settings", index.BackendInverted)

	var exists *ErrIndexExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "settings", exists.ID)
}

func TestService_DeleteIndex(t *testing.T) {
	svc := NewService()

	_, err := svc.CreateIndex("settings", index.BackendLinear)
	require.NoError(t, err)

	svc.DeleteIndex("settings")
	_, err = svc.GetIndex("settings")
	assert.ErrorIs(t, err, ErrIndexNotFound)

	// Unknown ids are ignored.
	svc.DeleteIndex("missing")

	// The id is free again.
	_, err = svc.CreateIndex("settings", index.BackendInverted)
	assert.NoError(t, err)
}

func TestService_IDs(t *testing.T) {
	svc := NewService()

	_, err := svc.CreateIndex("a", index.BackendLinear)
	require.NoError(t, err)
	_, err = svc.CreateIndex("b", index.BackendInverted)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b"}, svc.IDs())
}

func TestService_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	svc := NewService()
	idx, err := svc.CreateIndex("settings", index.BackendLinear)
	require.NoError(t, err)
	require.NoError(t, idx.AddOrUpdate(sampleDocs()))

	require.NoError(t, svc.Snapshot(ctx, store))

	// A fresh service restores from the same store.
	svc2 := NewService()
	idx2, err := svc2.CreateIndex("settings", index.BackendLinear)
	require.NoError(t, err)
	require.NoError(t, svc2.RestoreIndex(ctx, store, "settings"))

	assert.Equal(t, uint64(2), idx2.GetSize())

	results, err := idx2.Find("apple", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc1", results[0].Key)
}

func TestService_RestoreUnknownIndex(t *testing.T) {
	svc := NewService()

	err := svc.RestoreIndex(context.Background(), blobstore.NewMemoryStore(), "missing")
	assert.ErrorIs(t, err, ErrIndexNotFound)
}
