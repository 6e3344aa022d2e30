package http

import (
	"net/http"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/metrics"
	"agrirent-backend/internal/service"
)

// BookingHandler serves the booking lifecycle routes. All routes require
// an authenticated user.
type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	MachineryID  int32            `json:"machinery_id"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	WithOperator bool             `json:"with_operator"`
	Location     *domain.Location `json:"location,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	var req createBookingRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), user.ID, service.CreateBookingRequest{
		MachineryID:  req.MachineryID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		WithOperator: req.WithOperator,
		Location:     req.Location,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	metrics.IncBookingCreated()
	respondData(w, http.StatusCreated, "booking created successfully", booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	bookings, err := h.bookings.ListBookings(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", bookings)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), user.ID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", booking)
}

type statusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// UpdateStatus is the owner's accept/reject decision.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.bookings.UpdateBookingStatus(r.Context(), user.ID, id, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "booking status updated successfully", booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.bookings.CancelBooking(r.Context(), user.ID, id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "booking cancelled successfully", nil)
}
