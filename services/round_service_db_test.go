package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestLoadRoundWithCourse_PropagatesDBError(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoundService(db)

	mock.ExpectQuery(`SELECT \* FROM "golf_rounds" WHERE id = \$1`).
		WillReturnError(sql.ErrConnDone)

	round, err := svc.loadRoundWithCourse("round-1")
	require.Error(t, err)
	assert.Nil(t, round)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRoundWithCourse_ReturnsRound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoundService(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "golf_rounds" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "date", "scoring_average", "created_at", "updated_at"}).
			AddRow("round-1", "user-1", now, 82.0, now, now))

	round, err := svc.loadRoundWithCourse("round-1")
	require.NoError(t, err)
	require.NotNil(t, round)
	assert.Equal(t, "round-1", round.ID)
	assert.InDelta(t, 82.0, round.ScoringAverage, 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}
