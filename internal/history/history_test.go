package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	// One named in-memory database per test so records cannot leak between
	// tests through the shared cache.
	store, err := NewStore(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Record(ctx, &QueryRecord{
		Query:          "show me high risk warehouses",
		Intent:         "risk_identification",
		Success:        true,
		ResultCount:    10,
		ElapsedSeconds: 1.24,
		CreatedAt:      time.Now(),
	})
	store.Record(ctx, &QueryRecord{
		Query:          "compare zones",
		Intent:         "comparison",
		Success:        true,
		ResultCount:    4,
		ElapsedSeconds: 0.87,
		CreatedAt:      time.Now(),
	})

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "compare zones", records[0].Query)
	assert.Equal(t, "show me high risk warehouses", records[1].Query)
	assert.Equal(t, 10, records[1].ResultCount)
}

func TestRecentHonorsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.Record(ctx, &QueryRecord{
			Query:     "q",
			Intent:    "exploration",
			Success:   true,
			CreatedAt: time.Now(),
		})
	}

	records, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecentDefaultsLimit(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
