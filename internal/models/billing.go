package models

import "time"

// Billing statuses derived from a bill's payments.
const (
	BillingPending = "pending"
	BillingPartial = "partial"
	BillingPaid    = "paid"
	BillingOverdue = "overdue"
)

// Billing is an amount owed by a student.
type Billing struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	Amount    float64   `db:"amount" json:"amount"`
	DueDate   time.Time `db:"due_date" json:"due_date"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BillingDetail adds the running paid total to a bill.
type BillingDetail struct {
	Billing
	AmountPaid float64 `db:"amount_paid" json:"amount_paid"`
}

// Payment is money received against a specific bill.
type Payment struct {
	ID            int64     `db:"id" json:"id"`
	BillID        int64     `db:"bill_id" json:"bill_id"`
	AmountPaid    float64   `db:"amount_paid" json:"amount_paid"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	PaymentDate   time.Time `db:"payment_date" json:"payment_date"`
}

// PaymentDetail carries bill and student context for receipts.
type PaymentDetail struct {
	Payment
	BillAmount  float64 `db:"bill_amount" json:"bill_amount"`
	StudentID   int64   `db:"student_id" json:"student_id"`
	StudentName string  `db:"student_name" json:"student_name"`
}

// DeriveBillingStatus computes a bill's status from its payments.
// The status is a pure function of the amount owed, the sum paid so far
// and the due date.
func DeriveBillingStatus(amount, paid float64, dueDate, now time.Time) string {
	if amount > 0 && paid >= amount {
		return BillingPaid
	}
	if now.After(dueDate) {
		return BillingOverdue
	}
	if paid > 0 {
		return BillingPartial
	}
	return BillingPending
}
