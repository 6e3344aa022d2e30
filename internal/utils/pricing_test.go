package utils

import (
	"testing"
	"time"

	"agrirent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestQuoteRental(t *testing.T) {
	machinery := &domain.Machinery{
		DailyRateCents:      1000,
		OperatorAvailable:   true,
		OperatorChargeCents: 100,
	}
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("Exact Two Days", func(t *testing.T) {
		quote, err := QuoteRental(start, start.Add(48*time.Hour), false, machinery)
		assert.NoError(t, err)
		assert.Equal(t, int32(48), quote.Hours)
		assert.Equal(t, int32(2), quote.Days)
		assert.Equal(t, int32(2000), quote.TotalAmountCents)
	})

	t.Run("Partial Hour Rounds Up", func(t *testing.T) {
		quote, err := QuoteRental(start, start.Add(24*time.Hour+time.Minute), false, machinery)
		assert.NoError(t, err)
		assert.Equal(t, int32(25), quote.Hours)
		assert.Equal(t, int32(2), quote.Days)
		assert.Equal(t, int32(2000), quote.TotalAmountCents)
	})

	t.Run("Single Hour Is One Day", func(t *testing.T) {
		quote, err := QuoteRental(start, start.Add(time.Hour), false, machinery)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), quote.Hours)
		assert.Equal(t, int32(1), quote.Days)
		assert.Equal(t, int32(1000), quote.TotalAmountCents)
	})

	t.Run("With Operator", func(t *testing.T) {
		quote, err := QuoteRental(start, start.Add(48*time.Hour), true, machinery)
		assert.NoError(t, err)
		assert.Equal(t, int32(200), quote.OperatorFeeCents)
		assert.Equal(t, int32(2200), quote.TotalAmountCents)
		assert.True(t, quote.OperatorAssigned)
	})

	t.Run("Operator Requested But Not Offered", func(t *testing.T) {
		noOperator := &domain.Machinery{DailyRateCents: 1000}
		quote, err := QuoteRental(start, start.Add(48*time.Hour), true, noOperator)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), quote.OperatorFeeCents)
		assert.Equal(t, int32(2000), quote.TotalAmountCents)
		assert.True(t, quote.OperatorAssigned)
	})

	t.Run("End Equals Start", func(t *testing.T) {
		_, err := QuoteRental(start, start, false, machinery)
		assert.Error(t, err)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	})

	t.Run("End Before Start", func(t *testing.T) {
		_, err := QuoteRental(start, start.Add(-time.Hour), false, machinery)
		assert.Error(t, err)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	})
}
