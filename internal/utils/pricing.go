package utils

import (
	"time"

	"agrirent-backend/internal/domain"
)

// RentalQuote is the price breakdown for a prospective booking.
type RentalQuote struct {
	Hours            int32
	Days             int32
	BaseCents        int32
	OperatorFeeCents int32
	TotalAmountCents int32
	OperatorAssigned bool
}

// QuoteRental computes the booking price. Duration is rounded up to
// whole hours, then to whole billable days; the base is days times the
// machinery's daily rate. When the renter requests an operator and the
// machinery offers one, the operator charge is added per billable day.
// The amount is fixed at booking creation and never recomputed.
func QuoteRental(start, end time.Time, withOperator bool, m *domain.Machinery) (RentalQuote, error) {
	if !end.After(start) {
		return RentalQuote{}, domain.ValidationError("end date must be after start date")
	}

	hours := int32((end.Sub(start) + time.Hour - 1) / time.Hour)
	days := (hours + 23) / 24

	quote := RentalQuote{
		Hours:     hours,
		Days:      days,
		BaseCents: days * m.DailyRateCents,
	}
	if withOperator && m.OperatorAvailable {
		quote.OperatorFeeCents = days * m.OperatorChargeCents
	}
	if withOperator {
		quote.OperatorAssigned = true
	}
	quote.TotalAmountCents = quote.BaseCents + quote.OperatorFeeCents
	return quote, nil
}
