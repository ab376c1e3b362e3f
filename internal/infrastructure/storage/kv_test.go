package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
)

func openTestDB(t *testing.T) repository.KeyValueStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "caviar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteKeyValueStore(db)
}

func testKeyValueStore(t *testing.T, store repository.KeyValueStore) {
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "caviar_cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "caviar_cart", []byte(`{"items":[]}`)))
	require.NoError(t, store.Set(ctx, "caviar_cart", []byte(`{"items":[],"total":0}`)))

	value, ok, err := store.Get(ctx, "caviar_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"items":[],"total":0}`, string(value))

	require.NoError(t, store.Delete(ctx, "caviar_cart"))
	require.NoError(t, store.Delete(ctx, "caviar_cart"))
	_, ok, err = store.Get(ctx, "caviar_cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryKeyValueStore(t *testing.T) {
	testKeyValueStore(t, NewMemoryKeyValueStore())
}

func TestSQLiteKeyValueStore(t *testing.T) {
	testKeyValueStore(t, openTestDB(t))
}

func TestMemoryKeyValueStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKeyValueStore()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryKeyValueStore()
	first := Namespace(inner, "cart:1")
	second := Namespace(inner, "cart:2")

	require.NoError(t, first.Set(ctx, "caviar_cart", []byte("one")))
	_, ok, err := second.Get(ctx, "caviar_cart")
	require.NoError(t, err)
	assert.False(t, ok)

	raw, ok, err := inner.Get(ctx, "cart:1/caviar_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", string(raw))

	testKeyValueStore(t, second)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func testLeadJournal(t *testing.T, journal repository.LeadJournal) {
	ctx := context.Background()
	base := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, journal.Save(ctx, entity.LeadRecord{
			ID:        id,
			Type:      entity.LeadContact,
			Text:      "lead " + id,
			Payload:   []byte(`{"type":"contact"}`),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, journal.MarkDelivered(ctx, "b"))
	assert.Error(t, journal.MarkDelivered(ctx, "missing"))

	recent, err := journal.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.True(t, recent[1].Delivered)
	assert.False(t, recent[0].Delivered)
	assert.Equal(t, entity.LeadContact, recent[0].Type)
	assert.JSONEq(t, `{"type":"contact"}`, string(recent[0].Payload))

	all, err := journal.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryLeadJournal(t *testing.T) {
	testLeadJournal(t, NewMemoryLeadJournal(100))
}

func TestMemoryLeadJournal_Trims(t *testing.T) {
	ctx := context.Background()
	journal := NewMemoryLeadJournal(2)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, journal.Save(ctx, entity.LeadRecord{ID: id}))
	}
	recent, err := journal.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Len(t, recent, 2)
}

func TestSQLiteLeadJournal(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	testLeadJournal(t, NewSQLiteLeadJournal(db))
}
