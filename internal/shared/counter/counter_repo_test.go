package counter_test

import (
	"context"
	"regexp"
	"testing"

	"go-taxdesk/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_GetNextValue(t *testing.T) {
	db, mock := newGormMock(t)
	repo := counter.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO company_counters")).
		WithArgs("comp-1", "INVOICE-2024").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

	v, err := repo.GetNextValue(context.Background(), "comp-1", "INVOICE-2024")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNextValue_InTx(t *testing.T) {
	db, mock := newGormMock(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO company_counters")).
		WithArgs("comp-1", counter.TypeEmployee).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(1))
	mock.ExpectRollback()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	v, err := counter.NewRepository(db).WithTx(tx).GetNextValue(context.Background(), "comp-1", counter.TypeEmployee)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
