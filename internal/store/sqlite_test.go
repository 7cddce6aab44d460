package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_RecordAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.RecordRun(ctx, Run{
		LeftPath:     "zones.shp",
		RightPath:    "parcels.geojson",
		GroupBy:      "region",
		Reduction:    "sum",
		LeftCount:    12,
		RightCount:   40,
		OverlayCount: 31,
		GroupCount:   5,
		ElapsedMS:    17,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "region", got.GroupBy)
	assert.Equal(t, 31, got.OverlayCount)
	assert.False(t, got.EmptyOverlay)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.RecordRun(ctx, Run{
			LeftPath:  "a.shp",
			RightPath: "b.shp",
			GroupBy:   "k",
			Reduction: "sum",
		})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	all, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLiteStore_EmptyOverlayFlag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.RecordRun(ctx, Run{
		LeftPath: "a.shp", RightPath: "b.shp",
		GroupBy: "k", Reduction: "sum",
		EmptyOverlay: true,
	})
	require.NoError(t, err)

	got, err := s.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.EmptyOverlay)
}
