package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oduyemi/preschool-api/internal/models"
	"github.com/oduyemi/preschool-api/internal/repository"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
	"github.com/oduyemi/preschool-api/pkg/export"
)

type billingRepository interface {
	Create(ctx context.Context, bill *models.Billing) error
	FindByID(ctx context.Context, id int64) (*models.BillingDetail, error)
	List(ctx context.Context, studentID int64) ([]models.BillingDetail, error)
	RecordPayment(ctx context.Context, payment *models.Payment) (string, error)
	ListPayments(ctx context.Context, billID int64) ([]models.Payment, error)
	FindPaymentByID(ctx context.Context, id int64) (*models.PaymentDetail, error)
	DeletePayment(ctx context.Context, id int64) error
}

type receiptRenderer interface {
	RenderReceipt(fields []export.ReceiptField, title string) ([]byte, error)
}

// CreateBillRequest opens a new bill against a student.
type CreateBillRequest struct {
	StudentID int64   `json:"student_id" validate:"required,gt=0"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	DueDate   string  `json:"due_date" validate:"required"`
}

// RecordPaymentRequest applies money to a bill.
type RecordPaymentRequest struct {
	BillID        int64   `json:"bill_id" validate:"required,gt=0"`
	AmountPaid    float64 `json:"amount_paid" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash card transfer cheque"`
}

// BillingService handles bills, payments and receipts.
type BillingService struct {
	repo      billingRepository
	students  studentChecker
	receipts  receiptRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewBillingService constructs the billing service.
func NewBillingService(repo billingRepository, students studentChecker, receipts receiptRenderer, validate *validator.Validate, logger *zap.Logger) *BillingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingService{repo: repo, students: students, receipts: receipts, validator: validate, logger: logger, now: time.Now}
}

// CreateBill opens a bill. The status starts out derived from the due date.
func (s *BillingService) CreateBill(ctx context.Context, req CreateBillRequest) (*models.Billing, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bill payload")
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "due date must use the YYYY-MM-DD format")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	bill := &models.Billing{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Status:    models.DeriveBillingStatus(req.Amount, 0, dueDate, s.now()),
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create bill")
	}
	return bill, nil
}

// GetBill returns a bill with its running paid total.
func (s *BillingService) GetBill(ctx context.Context, id int64) (*models.BillingDetail, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "bill not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bill")
	}
	return bill, nil
}

// ListBills returns bills, optionally narrowed to one student.
func (s *BillingService) ListBills(ctx context.Context, studentID int64) ([]models.BillingDetail, error) {
	bills, err := s.repo.List(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bills")
	}
	return bills, nil
}

// RecordPayment applies a payment inside a single transaction and returns
// the payment together with the bill's recomputed status.
func (s *BillingService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*models.Payment, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	payment := &models.Payment{
		BillID:        req.BillID,
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   s.now(),
	}
	status, err := s.repo.RecordPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, repository.ErrExceedsBalance) {
			return nil, "", appErrors.Clone(appErrors.ErrValidation, "payment exceeds the remaining balance")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "bill not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}
	return payment, status, nil
}

// ListPayments returns the payments recorded against a bill.
func (s *BillingService) ListPayments(ctx context.Context, billID int64) ([]models.Payment, error) {
	if _, err := s.repo.FindByID(ctx, billID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "bill not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bill")
	}
	payments, err := s.repo.ListPayments(ctx, billID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return payments, nil
}

// GetPayment returns one payment with receipt context.
func (s *BillingService) GetPayment(ctx context.Context, id int64) (*models.PaymentDetail, error) {
	payment, err := s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	return payment, nil
}

// DeletePayment removes a payment and recomputes the bill's status.
func (s *BillingService) DeletePayment(ctx context.Context, id int64) (*models.PaymentDetail, error) {
	payment, err := s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	if err := s.repo.DeletePayment(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete payment")
	}
	return payment, nil
}

// Receipt renders a PDF receipt for a payment.
func (s *BillingService) Receipt(ctx context.Context, paymentID int64) ([]byte, error) {
	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	fields := []export.ReceiptField{
		{Label: "Receipt No", Value: fmt.Sprintf("%06d", payment.ID)},
		{Label: "Student", Value: payment.StudentName},
		{Label: "Bill Amount", Value: fmt.Sprintf("%.2f", payment.BillAmount)},
		{Label: "Amount Paid", Value: fmt.Sprintf("%.2f", payment.AmountPaid)},
		{Label: "Payment Method", Value: payment.PaymentMethod},
		{Label: "Payment Date", Value: payment.PaymentDate.Format("2006-01-02 15:04")},
	}
	receipt, err := s.receipts.RenderReceipt(fields, "Payment Receipt")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}
	return receipt, nil
}
