package service

import (
	"context"
	"fmt"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/utils"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	machineryRepo repository.MachineryRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
	emailSvc      EmailService
	cancelWindow  time.Duration
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	machineryRepo repository.MachineryRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	cancelWindow time.Duration,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		machineryRepo: machineryRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
		emailSvc:      emailSvc,
		cancelWindow:  cancelWindow,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID int32, req CreateBookingRequest) (*domain.Booking, error) {
	machinery, err := s.machineryRepo.GetByID(ctx, req.MachineryID)
	if err != nil {
		return nil, err
	}
	if !machinery.Availability {
		return nil, domain.UnavailableError("machinery is not available")
	}

	quote, err := utils.QuoteRental(req.StartDate, req.EndDate, req.WithOperator, machinery)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		MachineryID:      machinery.ID,
		RenterID:         renterID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		WithOperator:     req.WithOperator,
		Status:           domain.BookingStatusPending,
		TotalAmountCents: quote.TotalAmountCents,
		PaymentStatus:    domain.PaymentStatusPending,
		Location:         req.Location,
		Notes:            req.Notes,
	}

	// Operator-assisted rentals bundle the owning provider as operator.
	if quote.OperatorAssigned {
		owner, err := s.userRepo.GetByID(ctx, machinery.OwnerID)
		if err != nil {
			return nil, err
		}
		if !owner.HasRole(domain.RoleOperator) {
			return nil, domain.ValidationError("selected operator must hold the operator role")
		}
		ownerID := machinery.OwnerID
		booking.OperatorID = &ownerID
	}

	// The reservation and the booking insert commit together; a lost
	// availability race surfaces here as an UNAVAILABLE error.
	if err := s.bookingRepo.CreateReserving(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyBookingCreated(ctx, booking, machinery)
	return booking, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, callerID, bookingID int32, status domain.BookingStatus) (*domain.Booking, error) {
	if status != domain.BookingStatusAccepted && status != domain.BookingStatusRejected {
		return nil, domain.ValidationError("status must be accepted or rejected")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	machinery, err := s.machineryRepo.GetByID(ctx, booking.MachineryID)
	if err != nil {
		return nil, err
	}
	if machinery.OwnerID != callerID {
		return nil, domain.ForbiddenError("not authorized")
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	// Acceptance re-asserts the hold. Rejection deliberately leaves the
	// availability flag untouched; the reconciliation job frees the item.
	if status == domain.BookingStatusAccepted {
		if err := s.machineryRepo.SetAvailability(ctx, machinery.ID, false); err != nil {
			return nil, err
		}
	}

	s.notifyBookingStatus(ctx, booking, machinery, status)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, callerID, bookingID int32) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if time.Since(booking.CreatedOn) > s.cancelWindow {
		return domain.WindowExpiredError("cancellation window of %d hours has passed", int(s.cancelWindow.Hours()))
	}

	// Free the machinery before dropping the booking row so a crash in
	// between cannot strand the item in an unavailable state.
	if err := s.machineryRepo.SetAvailability(ctx, booking.MachineryID, true); err != nil {
		if domain.CodeOf(err) != domain.CodeNotFound {
			return err
		}
	}

	if err := s.bookingRepo.Delete(ctx, booking.ID); err != nil {
		return err
	}

	s.notifyBookingCancelled(ctx, booking, callerID)
	return nil
}

func (s *bookingService) ListBookings(ctx context.Context, renterID int32) ([]domain.BookingDetail, error) {
	bookings, err := s.bookingRepo.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, err
	}

	details := make([]domain.BookingDetail, 0, len(bookings))
	for i := range bookings {
		detail, err := s.enrich(ctx, &bookings[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *bookingService) GetBooking(ctx context.Context, callerID, bookingID int32) (*domain.BookingDetail, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	// Farmers may only see their own bookings; other roles are not
	// restricted here.
	if caller.HasRole(domain.RoleFarmer) && booking.RenterID != callerID {
		return nil, domain.ForbiddenError("not authorized")
	}

	return s.enrich(ctx, booking)
}

// enrich attaches machinery (with owner summary), renter and operator
// summaries to a booking. Referenced records that have since vanished
// are left nil rather than failing the whole fetch.
func (s *bookingService) enrich(ctx context.Context, booking *domain.Booking) (*domain.BookingDetail, error) {
	detail := &domain.BookingDetail{Booking: *booking}

	if machinery, err := s.machineryRepo.GetByID(ctx, booking.MachineryID); err == nil {
		if owner, err := s.userRepo.GetByID(ctx, machinery.OwnerID); err == nil {
			machinery.Owner = owner.Summary()
		}
		detail.Machinery = machinery
	}
	if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
		detail.Renter = renter.Summary()
	}
	if booking.OperatorID != nil {
		if operator, err := s.userRepo.GetByID(ctx, *booking.OperatorID); err == nil {
			detail.Operator = operator.Summary()
		}
	}
	return detail, nil
}

func (s *bookingService) notifyBookingCreated(ctx context.Context, booking *domain.Booking, machinery *domain.Machinery) {
	owner, _ := s.userRepo.GetByID(ctx, machinery.OwnerID)
	renter, _ := s.userRepo.GetByID(ctx, booking.RenterID)
	if owner == nil || renter == nil {
		return
	}

	_ = s.emailSvc.SendBookingRequestNotification(ctx, owner.Email, renter.Name, machinery.Name)

	note := &domain.Notification{
		UserID:  owner.ID,
		Title:   "New Booking Request",
		Message: fmt.Sprintf("%s requested to book %s", renter.Name, machinery.Name),
		Attributes: map[string]string{
			"type":       "BOOKING_REQUEST",
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}

func (s *bookingService) notifyBookingStatus(ctx context.Context, booking *domain.Booking, machinery *domain.Machinery, status domain.BookingStatus) {
	renter, _ := s.userRepo.GetByID(ctx, booking.RenterID)
	if renter == nil {
		return
	}

	_ = s.emailSvc.SendBookingStatusNotification(ctx, renter.Email, machinery.Name, status)

	note := &domain.Notification{
		UserID:  renter.ID,
		Title:   fmt.Sprintf("Booking %s", status),
		Message: fmt.Sprintf("Your booking for %s was %s", machinery.Name, status),
		Attributes: map[string]string{
			"type":       "BOOKING_STATUS",
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}

func (s *bookingService) notifyBookingCancelled(ctx context.Context, booking *domain.Booking, callerID int32) {
	machinery, _ := s.machineryRepo.GetByID(ctx, booking.MachineryID)
	if machinery == nil {
		return
	}
	owner, _ := s.userRepo.GetByID(ctx, machinery.OwnerID)
	caller, _ := s.userRepo.GetByID(ctx, callerID)
	if owner == nil || caller == nil {
		return
	}

	_ = s.emailSvc.SendBookingCancellationNotification(ctx, owner.Email, caller.Name, machinery.Name)

	note := &domain.Notification{
		UserID:  owner.ID,
		Title:   "Booking Cancelled",
		Message: fmt.Sprintf("%s cancelled the booking for %s", caller.Name, machinery.Name),
		Attributes: map[string]string{
			"type":       "BOOKING_CANCELLED",
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}
	_ = s.noteRepo.Create(ctx, note)
}
