package pricing

import (
	"strings"

	"ashoka_frontdesk/internal/domain"
)

// ApplyDiscount takes percent off subtotal and returns the discount and what is left to tax.
// The discount never exceeds the subtotal.
func ApplyDiscount(subtotal, percent float64) (discount, taxable float64) {
	if subtotal <= 0 || percent <= 0 {
		return 0, max(subtotal, 0)
	}
	discount = min(subtotal*percent/100, subtotal)
	return discount, subtotal - discount
}

// ValidateDiscount enforces the discount policy at submission time.
func ValidateDiscount(percent float64, notes string, nonChargeable bool) error {
	if nonChargeable {
		return nil
	}
	if percent < 0 || percent > 100 {
		return domain.InvalidMsg("discountPercent", "discount must be between 0 and 100")
	}
	if percent > 0 && strings.TrimSpace(notes) == "" {
		return domain.Invalid("discountNotes", domain.ErrDiscountNotesRequired)
	}
	return nil
}
