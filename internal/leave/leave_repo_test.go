package leave

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Kedua UPDATE bersyarat harus berjalan di tx yang di-inject, bukan pool,
// supaya ikut rollback transaksi pemanggil.
func TestGuardedUpdatesUseInjectedTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.NewString()
	employeeID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leave_requests").
		WithArgs(StatusApproved, id, StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE leave_quotas").
		WithArgs(3, employeeID, 2026, TypeTahunan, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewRepository(nil).WithTx(tx)

	moved, err := repo.TransitionStatus(context.Background(), id, StatusPending, StatusApproved)
	require.NoError(t, err)
	assert.True(t, moved)

	consumed, err := repo.ConsumeQuota(context.Background(), employeeID, 2026, TypeTahunan, 3)
	require.NoError(t, err)
	assert.False(t, consumed)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
