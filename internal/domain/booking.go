package domain

import "time"

// GuestDetails is the guest registration card (GRC) captured at the desk.
type GuestDetails struct {
	GRCNo          string `json:"grcNo,omitempty"`
	Salutation     string `json:"salutation,omitempty"`
	Name           string `json:"name"`
	MobileNo       string `json:"mobileNo"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	Company        string `json:"companyName,omitempty"`
	GSTNumber      string `json:"companyGSTIN,omitempty"`
	Adults         int    `json:"noOfAdults"`
	Children       int    `json:"noOfChildren"`
	PurposeOfVisit string `json:"purposeOfVisit,omitempty"`
	ArrivalFrom    string `json:"arrivalFrom,omitempty"`
	BookingRefNo   string `json:"bookingRefNo,omitempty"`
	Remarks        string `json:"remark,omitempty"`
}

// RoomRate is the per-room line sent with a booking.
type RoomRate struct {
	RoomNumber        string     `json:"roomNumber"`
	CustomRate        *float64   `json:"customRate"`
	ExtraBed          bool       `json:"extraBed"`
	ExtraBedStartDate *time.Time `json:"extraBedStartDate,omitempty"`
}

// BookingRequest is the payload posted to the hotel API.
type BookingRequest struct {
	GuestDetails

	CategoryID    string     `json:"categoryId"`
	CheckInDate   string     `json:"checkInDate"`
	CheckOutDate  string     `json:"checkOutDate"`
	Days          int        `json:"days"`
	NumberOfRooms int        `json:"numberOfRooms"`
	RoomRates     []RoomRate `json:"roomRates"`

	ExtraBed       bool     `json:"extraBed"`
	ExtraBedCharge float64  `json:"extraBedCharge"`
	ExtraBedRooms  []string `json:"extraBedRooms"`

	Rate            float64 `json:"rate"`
	DiscountPercent float64 `json:"discountPercent"`
	DiscountNotes   string  `json:"discountNotes,omitempty"`
	NonChargeable   bool    `json:"nonChargeable"`
	CGSTRate        float64 `json:"cgstRate"`
	SGSTRate        float64 `json:"sgstRate"`
	TaxableAmount   float64 `json:"taxableAmount"`
	CGSTAmount      float64 `json:"cgstAmount"`
	SGSTAmount      float64 `json:"sgstAmount"`
	TotalAmount     float64 `json:"totalAmount"`

	AdvancePayments    []AdvancePayment `json:"advancePayments"`
	TotalAdvanceAmount float64          `json:"totalAdvanceAmount"`
	BalanceAmount      float64          `json:"balanceAmount"`
}

type BookedRoom struct {
	InvoiceNumber string `json:"invoiceNumber"`
	RoomNumber    string `json:"roomNumber,omitempty"`
	BookingID     string `json:"_id,omitempty"`
}

type BookingResult struct {
	Booked []BookedRoom `json:"booked"`
}

func (r BookingResult) InvoiceNumbers() []string {
	out := make([]string, 0, len(r.Booked))
	for _, b := range r.Booked {
		if b.InvoiceNumber != "" {
			out = append(out, b.InvoiceNumber)
		}
	}
	return out
}

type Outcome string

const (
	OutcomeBooked   Outcome = "booked"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeConflict Outcome = "conflict"
	OutcomeFailed   Outcome = "failed"
)

// Submission is the journal entry written for every booking attempt.
type Submission struct {
	ID             string    `json:"id"`
	IdempotencyKey string    `json:"idempotencyKey"`
	GuestName      string    `json:"guestName"`
	CheckIn        time.Time `json:"checkInDate"`
	CheckOut       time.Time `json:"checkOutDate"`
	RoomNumbers    []string  `json:"roomNumbers"`
	GrandTotal     float64   `json:"grandTotal"`
	TotalAdvance   float64   `json:"totalAdvance"`
	BalanceDue     float64   `json:"balanceDue"`
	Outcome        Outcome   `json:"outcome"`
	InvoiceNumbers []string  `json:"invoiceNumbers"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
