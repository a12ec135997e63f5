package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oduyemi/preschool-api/internal/models"
)

// ErrExceedsBalance is returned when a payment would exceed the bill's
// remaining balance.
var ErrExceedsBalance = errors.New("payment exceeds remaining balance")

// BillingRepository manages persistence for bills and payments.
type BillingRepository struct {
	db *sqlx.DB
}

// NewBillingRepository constructs a BillingRepository.
func NewBillingRepository(db *sqlx.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// Create inserts a bill and assigns its ID.
func (r *BillingRepository) Create(ctx context.Context, bill *models.Billing) error {
	if bill.Status == "" {
		bill.Status = models.BillingPending
	}
	bill.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO billing (student_id, amount, due_date, status, created_at)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &bill.ID, query,
		bill.StudentID, bill.Amount, bill.DueDate, bill.Status, bill.CreatedAt); err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

// FindByID fetches a bill with its running paid total.
func (r *BillingRepository) FindByID(ctx context.Context, id int64) (*models.BillingDetail, error) {
	const query = `SELECT b.id, b.student_id, b.amount, b.due_date, b.status, b.created_at,
        COALESCE(SUM(p.amount_paid), 0) AS amount_paid
        FROM billing b
        LEFT JOIN payments p ON p.bill_id = b.id
        WHERE b.id = $1
        GROUP BY b.id`
	var detail models.BillingDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns bills with paid totals, optionally filtered by student.
func (r *BillingRepository) List(ctx context.Context, studentID int64) ([]models.BillingDetail, error) {
	query := `SELECT b.id, b.student_id, b.amount, b.due_date, b.status, b.created_at,
        COALESCE(SUM(p.amount_paid), 0) AS amount_paid
        FROM billing b
        LEFT JOIN payments p ON p.bill_id = b.id`
	var args []interface{}
	if studentID > 0 {
		query += " WHERE b.student_id = $1"
		args = append(args, studentID)
	}
	query += " GROUP BY b.id ORDER BY b.due_date DESC"

	var bills []models.BillingDetail
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// RecordPayment inserts a payment and recomputes the bill status inside a
// single transaction. The bill row is locked for the duration so concurrent
// payments against the same bill serialise instead of racing on the status.
func (r *BillingRepository) RecordPayment(ctx context.Context, payment *models.Payment) (string, error) {
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}

	var bill models.Billing
	if err := tx.GetContext(ctx, &bill,
		`SELECT id, student_id, amount, due_date, status, created_at FROM billing WHERE id = $1 FOR UPDATE`,
		payment.BillID); err != nil {
		tx.Rollback() //nolint:errcheck
		return "", err
	}

	var paid float64
	if err := tx.GetContext(ctx, &paid,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE bill_id = $1`, payment.BillID); err != nil {
		tx.Rollback() //nolint:errcheck
		return "", fmt.Errorf("sum payments: %w", err)
	}

	if payment.AmountPaid > bill.Amount-paid {
		tx.Rollback() //nolint:errcheck
		return "", ErrExceedsBalance
	}

	if err := tx.GetContext(ctx, &payment.ID,
		`INSERT INTO payments (bill_id, amount_paid, payment_method, payment_date)
        VALUES ($1, $2, $3, $4) RETURNING id`,
		payment.BillID, payment.AmountPaid, payment.PaymentMethod, payment.PaymentDate); err != nil {
		tx.Rollback() //nolint:errcheck
		return "", fmt.Errorf("insert payment: %w", err)
	}

	status := models.DeriveBillingStatus(bill.Amount, paid+payment.AmountPaid, bill.DueDate, time.Now().UTC())
	if _, err := tx.ExecContext(ctx, `UPDATE billing SET status = $2 WHERE id = $1`, bill.ID, status); err != nil {
		tx.Rollback() //nolint:errcheck
		return "", fmt.Errorf("update bill status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit payment: %w", err)
	}
	return status, nil
}

// ListPayments returns the payments recorded against a bill, newest first.
func (r *BillingRepository) ListPayments(ctx context.Context, billID int64) ([]models.Payment, error) {
	const query = `SELECT id, bill_id, amount_paid, payment_method, payment_date
        FROM payments WHERE bill_id = $1 ORDER BY payment_date DESC`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, billID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// FindPaymentByID fetches a payment with bill and student context.
func (r *BillingRepository) FindPaymentByID(ctx context.Context, id int64) (*models.PaymentDetail, error) {
	const query = `SELECT p.id, p.bill_id, p.amount_paid, p.payment_method, p.payment_date,
        b.amount AS bill_amount, b.student_id, s.name AS student_name
        FROM payments p
        JOIN billing b ON b.id = p.bill_id
        JOIN students s ON s.id = b.student_id
        WHERE p.id = $1`
	var detail models.PaymentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// DeletePayment removes a payment and recomputes the bill status in the same
// transaction.
func (r *BillingRepository) DeletePayment(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	var billID int64
	if err := tx.GetContext(ctx, &billID, `SELECT bill_id FROM payments WHERE id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}

	var bill models.Billing
	if err := tx.GetContext(ctx, &bill,
		`SELECT id, student_id, amount, due_date, status, created_at FROM billing WHERE id = $1 FOR UPDATE`,
		billID); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete payment: %w", err)
	}

	var paid float64
	if err := tx.GetContext(ctx, &paid,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE bill_id = $1`, billID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("sum payments: %w", err)
	}

	status := models.DeriveBillingStatus(bill.Amount, paid, bill.DueDate, time.Now().UTC())
	if _, err := tx.ExecContext(ctx, `UPDATE billing SET status = $2 WHERE id = $1`, billID, status); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("update bill status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit payment delete: %w", err)
	}
	return nil
}
