package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")

	ErrDiscountNotesRequired  = errors.New("discount notes are required when a discount is applied")
	ErrAvailabilityNotChecked = errors.New("availability has not been checked for these dates")
	ErrCategoryUnavailable    = errors.New("no rooms available in this category")
	ErrRoomsUnavailable       = errors.New("not enough available rooms")
	ErrBusy                   = errors.New("another request is in progress")
)

// FieldError is a validation failure tied to one input.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

// Unwrap exposes both the specific cause and ErrValidation to errors.Is.
func (e *FieldError) Unwrap() []error { return []error{e.Err, ErrValidation} }

func Invalid(field string, err error) error { return &FieldError{Field: field, Err: err} }

func InvalidMsg(field, msg string) error { return &FieldError{Field: field, Err: errors.New(msg)} }
