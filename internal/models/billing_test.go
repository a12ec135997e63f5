package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBillingStatus(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 7)
	past := now.AddDate(0, 0, -7)

	tests := []struct {
		name    string
		amount  float64
		paid    float64
		dueDate time.Time
		want    string
	}{
		{"fully paid", 100, 100, future, BillingPaid},
		{"overpaid", 100, 120, past, BillingPaid},
		{"past due unpaid", 100, 0, past, BillingOverdue},
		{"past due partially paid", 100, 40, past, BillingOverdue},
		{"partial before due", 100, 40, future, BillingPartial},
		{"unpaid before due", 100, 0, future, BillingPending},
		{"zero amount stays pending", 0, 0, future, BillingPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveBillingStatus(tt.amount, tt.paid, tt.dueDate, now))
		})
	}
}
