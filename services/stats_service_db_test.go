package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cache lookup must read every stored row: the cache table has no
// soft-delete column, so no deleted_at filter may appear in the query (a
// filtered-out row would be invisible to reads yet still collide with the
// ON CONFLICT (user_id) upsert).
func TestCachedSnapshot_ServesFreshCache(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	computed := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "stat_snapshot_caches" WHERE user_id = \$1 ORDER BY`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "window_size", "snapshot", "round_count", "computed_at"}).
			AddRow("cache-1", "user-1", 10, `{"current":{}}`, int64(3), computed))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "golf_rounds" WHERE user_id = \$1 AND created_at > \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "golf_rounds" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	snap, ok := svc.cachedSnapshot("user-1")
	require.True(t, ok)
	assert.Equal(t, `{"current":{}}`, snap)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSnapshot_StaleWhenNewerRoundsExist(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	computed := time.Now().Add(-time.Hour)
	mock.ExpectQuery(`SELECT \* FROM "stat_snapshot_caches" WHERE user_id = \$1 ORDER BY`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "window_size", "snapshot", "round_count", "computed_at"}).
			AddRow("cache-1", "user-1", 10, `{"current":{}}`, int64(3), computed))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "golf_rounds" WHERE user_id = \$1 AND created_at > \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, ok := svc.cachedSnapshot("user-1")
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
