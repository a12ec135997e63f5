package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oduyemi/preschool-api/internal/models"
)

func TestBillingRepositoryRecordPayment(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBillingRepository(db)

	dueDate := time.Now().Add(30 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, student_id, amount, due_date, status, created_at FROM billing WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "amount", "due_date", "status", "created_at"}).
			AddRow(int64(1), int64(9), 100.0, dueDate, models.BillingPending, time.Now()))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paid\), 0\) FROM payments WHERE bill_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(40.0))
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(int64(1), 60.0, "cash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec(`UPDATE billing SET status = \$2 WHERE id = \$1`).
		WithArgs(int64(1), models.BillingPaid).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment := &models.Payment{BillID: 1, AmountPaid: 60, PaymentMethod: "cash"}
	status, err := repo.RecordPayment(context.Background(), payment)
	require.NoError(t, err)
	assert.Equal(t, models.BillingPaid, status)
	assert.Equal(t, int64(12), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingRepositoryRecordPaymentExceedsBalance(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBillingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, student_id, amount, due_date, status, created_at FROM billing WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "amount", "due_date", "status", "created_at"}).
			AddRow(int64(1), int64(9), 100.0, time.Now().Add(time.Hour), models.BillingPartial, time.Now()))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paid\), 0\) FROM payments WHERE bill_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(80.0))
	mock.ExpectRollback()

	payment := &models.Payment{BillID: 1, AmountPaid: 30, PaymentMethod: "cash"}
	_, err := repo.RecordPayment(context.Background(), payment)
	require.ErrorIs(t, err, ErrExceedsBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBillingRepository(db)

	mock.ExpectQuery("SELECT b.id, b.student_id, b.amount, b.due_date, b.status, b.created_at").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "amount", "due_date", "status", "created_at", "amount_paid"}).
			AddRow(int64(2), int64(4), 250.0, time.Now(), models.BillingPartial, time.Now(), 100.0))

	bill, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 250.0, bill.Amount)
	assert.Equal(t, 100.0, bill.AmountPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingRepositoryDeletePayment(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewBillingRepository(db)

	dueDate := time.Now().Add(14 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT bill_id FROM payments WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"bill_id"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT id, student_id, amount, due_date, status, created_at FROM billing WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "amount", "due_date", "status", "created_at"}).
			AddRow(int64(3), int64(9), 100.0, dueDate, models.BillingPaid, time.Now()))
	mock.ExpectExec(`DELETE FROM payments WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paid\), 0\) FROM payments WHERE bill_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(50.0))
	mock.ExpectExec(`UPDATE billing SET status = \$2 WHERE id = \$1`).
		WithArgs(int64(3), models.BillingPartial).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeletePayment(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
