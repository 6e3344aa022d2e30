package repository

import (
	"context"

	"agrirent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
}

// MachineryFilter narrows List results. Near/RadiusKM must be set
// together; the radius is converted to meters for the distance check.
type MachineryFilter struct {
	Type          domain.MachineryType
	AvailableOnly bool
	Near          *domain.GeoPoint
	RadiusKM      float64
}

type MachineryRepository interface {
	Create(ctx context.Context, m *domain.Machinery) error
	GetByID(ctx context.Context, id int32) (*domain.Machinery, error)
	Update(ctx context.Context, m *domain.Machinery) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter MachineryFilter) ([]domain.Machinery, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Machinery, error)

	// SetAvailability flips the availability flag unconditionally.
	// Used for the accept re-assert and the cancellation release.
	SetAvailability(ctx context.Context, id int32, available bool) error

	// ReconcileAvailability re-derives every availability flag from the
	// existence of pending/accepted bookings and returns the number of
	// rows corrected.
	ReconcileAvailability(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	// CreateReserving inserts the booking and flips the machinery's
	// availability to false in a single transaction. The flip is
	// conditional on availability being true; a concurrent creator that
	// loses the race gets an UNAVAILABLE error and no booking row.
	CreateReserving(ctx context.Context, b *domain.Booking) error

	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	Delete(ctx context.Context, id int32) error
	ListByRenter(ctx context.Context, renterID int32) ([]domain.Booking, error)
	CountActiveByMachinery(ctx context.Context, machineryID int32) (int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
