package pricing

import "ashoka_frontdesk/internal/domain"

const DefaultGSTRate = 2.5

func DefaultRates() domain.GSTRates {
	return domain.GSTRates{CGST: DefaultGSTRate, SGST: DefaultGSTRate}
}

// ApplyTax stacks CGST and SGST on the taxable amount.
func ApplyTax(taxable float64, r domain.GSTRates) (cgst, sgst, grand float64) {
	cgst = taxable * r.CGST / 100
	sgst = taxable * r.SGST / 100
	return cgst, sgst, taxable + cgst + sgst
}
