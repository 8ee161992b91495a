package domain

import "time"

type PaymentMode string

const (
	PaymentUnset        PaymentMode = ""
	PaymentCash         PaymentMode = "cash"
	PaymentCard         PaymentMode = "card"
	PaymentUPI          PaymentMode = "upi"
	PaymentBankTransfer PaymentMode = "bank_transfer"
	PaymentCheque       PaymentMode = "cheque"
)

func (m PaymentMode) Known() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer, PaymentCheque:
		return true
	}
	return false
}

// AdvancePayment is one partial payment taken before check-in.
type AdvancePayment struct {
	Amount    float64     `json:"amount"`
	Mode      PaymentMode `json:"paymentMode"`
	Date      time.Time   `json:"paymentDate"`
	Reference string      `json:"reference,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}
