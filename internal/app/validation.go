package app

import (
	"regexp"
	"strings"

	"ashoka_frontdesk/internal/domain"
	"ashoka_frontdesk/internal/pricing"
)

var (
	mobileRe = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	gstinRe  = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

// ValidateGuest checks the registration card fields the desk must capture.
func ValidateGuest(g domain.GuestDetails) error {
	if strings.TrimSpace(g.Name) == "" {
		return domain.InvalidMsg("name", "guest name is required")
	}
	mobile := strings.ReplaceAll(strings.TrimSpace(g.MobileNo), " ", "")
	if mobile == "" {
		return domain.InvalidMsg("mobileNo", "mobile number is required")
	}
	if !mobileRe.MatchString(mobile) {
		return domain.InvalidMsg("mobileNo", "mobile number must be a valid 10 digit number")
	}
	if e := strings.TrimSpace(g.Email); e != "" && !emailRe.MatchString(e) {
		return domain.InvalidMsg("email", "email address is not valid")
	}
	if gst := strings.TrimSpace(g.GSTNumber); gst != "" && !gstinRe.MatchString(strings.ToUpper(gst)) {
		return domain.InvalidMsg("companyGSTIN", "GSTIN is not valid")
	}
	if g.Adults < 1 {
		return domain.InvalidMsg("noOfAdults", "at least one adult is required")
	}
	if g.Children < 0 {
		return domain.InvalidMsg("noOfChildren", "children must not be negative")
	}
	return nil
}

// Validate runs every submission-time rule. It never mutates the form.
func (f *Form) Validate() error {
	if err := ValidateGuest(f.guest); err != nil {
		return err
	}
	if !f.stay.Valid() {
		return domain.InvalidMsg("checkOutDate", "check-out date must be after check-in date")
	}
	if f.phase == PhaseNoQuery {
		return domain.Invalid("availability", domain.ErrAvailabilityNotChecked)
	}
	if f.categoryID == "" {
		return domain.InvalidMsg("categoryId", "room category is required")
	}
	if len(f.selected) == 0 {
		return domain.InvalidMsg("roomNumbers", "select at least one room")
	}
	if err := pricing.ValidateDiscount(f.discountPercent, f.discountNotes, f.nonChargeable); err != nil {
		return err
	}
	if err := f.ledger.Validate(); err != nil {
		return err
	}
	return nil
}
