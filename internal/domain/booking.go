package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
)

// Active reports whether the booking still holds its machinery.
// Accepted and pending bookings are active; rejected is terminal.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusAccepted
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Booking is a rental agreement. TotalAmountCents is computed from the
// machinery's rates at creation time and never recomputed afterwards.
type Booking struct {
	ID               int32         `json:"id"`
	MachineryID      int32         `json:"machinery_id"`
	RenterID         int32         `json:"renter_id"`
	OperatorID       *int32        `json:"operator_id,omitempty"`
	StartDate        time.Time     `json:"start_date"`
	EndDate          time.Time     `json:"end_date"`
	WithOperator     bool          `json:"with_operator"`
	Status           BookingStatus `json:"status"`
	TotalAmountCents int32         `json:"total_amount_cents"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	Location         *Location     `json:"location,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	CreatedOn        time.Time     `json:"created_on"`
	UpdatedOn        time.Time     `json:"updated_on"`
}

// BookingDetail is a booking enriched with the referenced machinery
// (including its owner) and party summaries.
type BookingDetail struct {
	Booking
	Machinery *Machinery   `json:"machinery,omitempty"`
	Renter    *UserSummary `json:"renter,omitempty"`
	Operator  *UserSummary `json:"operator,omitempty"`
}
