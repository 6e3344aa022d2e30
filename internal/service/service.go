package service

import (
	"context"
	"encoding/json"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

// RegisterRequest carries the fields required to create an account.
type RegisterRequest struct {
	Email    string
	Password string
	Phone    string
	Name     string
	Roles    []domain.Role
}

// ProfileUpdate holds the fields a user may change on their own account.
// Nil pointers leave the existing value untouched.
type ProfileUpdate struct {
	Name            *string
	Phone           *string
	Address         *domain.Address
	ShopDetails     *domain.ShopDetails
	ProviderDetails *domain.ProviderDetails
	FarmerDetails   *domain.FarmerDetails
	OperatorDetails *domain.OperatorDetails
	LabourDetails   *domain.LabourDetails
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, update ProfileUpdate) (*domain.User, error)
	AddRole(ctx context.Context, userID int32, role domain.Role, roleDetails json.RawMessage) (*domain.User, error)
	RemoveRole(ctx context.Context, userID int32, role domain.Role) (*domain.User, error)
	UpdateLabourAvailability(ctx context.Context, userID int32, availability *bool, seasonal []domain.SeasonalAvailability) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID int32, newPassword string) error
}

// MachineryUpdate holds owner-editable machinery fields. Nil pointers
// leave the existing value untouched.
type MachineryUpdate struct {
	Name                *string
	Type                *domain.MachineryType
	Description         *string
	HourlyRateCents     *int32
	DailyRateCents      *int32
	OperatorAvailable   *bool
	OperatorChargeCents *int32
	Location            *domain.Location
	Specifications      map[string]string
}

type MachineryService interface {
	Create(ctx context.Context, ownerID int32, m *domain.Machinery) (*domain.Machinery, error)
	Get(ctx context.Context, id int32) (*domain.Machinery, error)
	List(ctx context.Context, filter repository.MachineryFilter) ([]domain.Machinery, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Machinery, error)
	Update(ctx context.Context, callerID, id int32, update MachineryUpdate) (*domain.Machinery, error)
	Delete(ctx context.Context, callerID, id int32) error
	AttachImages(ctx context.Context, callerID, id int32, images []domain.MachineryImage) (*domain.Machinery, error)
}

// CreateBookingRequest carries the renter's input for a new booking.
type CreateBookingRequest struct {
	MachineryID  int32
	StartDate    time.Time
	EndDate      time.Time
	WithOperator bool
	Location     *domain.Location
	Notes        string
}

type BookingService interface {
	CreateBooking(ctx context.Context, renterID int32, req CreateBookingRequest) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, callerID, bookingID int32, status domain.BookingStatus) (*domain.Booking, error)
	CancelBooking(ctx context.Context, callerID, bookingID int32) error
	ListBookings(ctx context.Context, renterID int32) ([]domain.BookingDetail, error)
	GetBooking(ctx context.Context, callerID, bookingID int32) (*domain.BookingDetail, error)
}

type NotificationService interface {
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, to, renterName, machineryName string) error
	SendBookingStatusNotification(ctx context.Context, to, machineryName string, status domain.BookingStatus) error
	SendBookingCancellationNotification(ctx context.Context, to, renterName, machineryName string) error
}
