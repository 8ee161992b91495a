package pricing

import (
	"fmt"
	"strings"
	"time"

	"ashoka_frontdesk/internal/domain"
)

// Ledger is the list of advance payments taken against one booking.
// Records are only appended, edited by index, or removed.
type Ledger struct {
	payments []domain.AdvancePayment
}

func NewLedger(ps ...domain.AdvancePayment) *Ledger {
	return &Ledger{payments: append([]domain.AdvancePayment(nil), ps...)}
}

// Add appends a blank payment dated today and returns its index.
func (l *Ledger) Add(today time.Time) int {
	l.payments = append(l.payments, domain.AdvancePayment{Date: domain.Day(today)})
	return len(l.payments) - 1
}

func (l *Ledger) Update(i int, fn func(p *domain.AdvancePayment)) error {
	if i < 0 || i >= len(l.payments) {
		return fmt.Errorf("%w: advance payment %d does not exist", domain.ErrNotFound, i)
	}
	fn(&l.payments[i])
	return nil
}

func (l *Ledger) Remove(i int) error {
	if i < 0 || i >= len(l.payments) {
		return fmt.Errorf("%w: advance payment %d does not exist", domain.ErrNotFound, i)
	}
	l.payments = append(l.payments[:i], l.payments[i+1:]...)
	return nil
}

func (l *Ledger) Len() int { return len(l.payments) }

// Payments returns a copy of the records.
func (l *Ledger) Payments() []domain.AdvancePayment {
	return append([]domain.AdvancePayment(nil), l.payments...)
}

func (l *Ledger) Total() float64 {
	var sum float64
	for _, p := range l.payments {
		sum += p.Amount
	}
	return sum
}

// BalanceDue never goes below zero.
func (l *Ledger) BalanceDue(grandTotal float64) float64 {
	return max(0, grandTotal-l.Total())
}

// Validate checks every record the way the desk does before submitting.
func (l *Ledger) Validate() error {
	for i, p := range l.payments {
		field := fmt.Sprintf("advancePayments[%d]", i)
		switch {
		case p.Amount < 0:
			return domain.InvalidMsg(field+".amount", "amount must not be negative")
		case p.Mode != domain.PaymentUnset && !p.Mode.Known():
			return domain.InvalidMsg(field+".paymentMode", fmt.Sprintf("unknown payment mode %q", p.Mode))
		case p.Amount > 0 && p.Mode == domain.PaymentUnset:
			return domain.InvalidMsg(field+".paymentMode", "payment mode is required")
		case p.Mode != domain.PaymentUnset && p.Mode != domain.PaymentCash && strings.TrimSpace(p.Reference) == "":
			return domain.InvalidMsg(field+".reference", "reference is required for non-cash payments")
		}
	}
	return nil
}
