package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*domain.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) UpdateProfile(ctx context.Context, userID int32, update service.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) AddRole(ctx context.Context, userID int32, role domain.Role, roleDetails json.RawMessage) (*domain.User, error) {
	args := m.Called(ctx, userID, role, roleDetails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) RemoveRole(ctx context.Context, userID int32, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) UpdateLabourAvailability(ctx context.Context, userID int32, availability *bool, seasonal []domain.SeasonalAvailability) (*domain.User, error) {
	args := m.Called(ctx, userID, availability, seasonal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) UpdatePassword(ctx context.Context, userID int32, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, renterID int32, req service.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) UpdateBookingStatus(ctx context.Context, callerID, bookingID int32, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, callerID, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, callerID, bookingID int32) error {
	args := m.Called(ctx, callerID, bookingID)
	return args.Error(0)
}
func (m *MockBookingService) ListBookings(ctx context.Context, renterID int32) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, callerID, bookingID int32) (*domain.BookingDetail, error) {
	args := m.Called(ctx, callerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestStatusFor(t *testing.T) {
	cases := map[domain.ErrorCode]int{
		domain.CodeValidation:     http.StatusBadRequest,
		domain.CodeUnavailable:    http.StatusBadRequest,
		domain.CodeAuthentication: http.StatusUnauthorized,
		domain.CodeWindowExpired:  http.StatusPaymentRequired,
		domain.CodeForbidden:      http.StatusForbidden,
		domain.CodeNotFound:       http.StatusNotFound,
		domain.CodeConflict:       http.StatusConflict,
		domain.CodeInternal:       http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, statusFor(code), string(code))
	}
}

func authedRequest(t *testing.T, method, target, body string, user *domain.User) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), userContextKey, user)
	return req.WithContext(ctx)
}

func TestBookingHandler_Create(t *testing.T) {
	user := &domain.User{ID: 1, Roles: []domain.Role{domain.RoleFarmer}}

	t.Run("Created", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewBookingHandler(bookings)
		bookings.On("CreateBooking", mock.Anything, int32(1), mock.AnythingOfType("service.CreateBookingRequest")).
			Return(&domain.Booking{ID: 7, MachineryID: 2, RenterID: 1, Status: domain.BookingStatusPending}, nil)

		body := `{"machinery_id":2,"start_date":"2026-03-01T08:00:00Z","end_date":"2026-03-03T08:00:00Z"}`
		rec := httptest.NewRecorder()
		handler.Create(rec, authedRequest(t, http.MethodPost, "/api/bookings", body, user))

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
	})

	t.Run("Unavailable Maps To 400", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewBookingHandler(bookings)
		bookings.On("CreateBooking", mock.Anything, int32(1), mock.Anything).
			Return(nil, domain.UnavailableError("machinery is not available"))

		body := `{"machinery_id":2,"start_date":"2026-03-01T08:00:00Z","end_date":"2026-03-03T08:00:00Z"}`
		rec := httptest.NewRecorder()
		handler.Create(rec, authedRequest(t, http.MethodPost, "/api/bookings", body, user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "machinery is not available", env.Message)
	})

	t.Run("Window Expiry Maps To 402", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewBookingHandler(bookings)
		bookings.On("CancelBooking", mock.Anything, int32(1), int32(7)).
			Return(domain.WindowExpiredError("cancellation window of 100 hours has passed"))

		req := authedRequest(t, http.MethodDelete, "/api/bookings/7", "", user)
		req = mux.SetURLVars(req, map[string]string{"id": "7"})
		rec := httptest.NewRecorder()
		handler.Cancel(rec, req)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewBookingHandler(bookings)

		rec := httptest.NewRecorder()
		handler.Create(rec, authedRequest(t, http.MethodPost, "/api/bookings", "{not json", user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		bookings.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing User", func(t *testing.T) {
		bookings := new(MockBookingService)
		handler := NewBookingHandler(bookings)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{}"))
		handler.Create(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		respondData(w, http.StatusOK, "", user.ID)
	})

	t.Run("Valid Bearer Token", func(t *testing.T) {
		auth := new(MockAuthService)
		auth.On("Authenticate", mock.Anything, "good-token").
			Return(&domain.User{ID: 1}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		AuthMiddleware(auth)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing Header", func(t *testing.T) {
		auth := new(MockAuthService)
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		rec := httptest.NewRecorder()
		AuthMiddleware(auth)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Wrong Scheme", func(t *testing.T) {
		auth := new(MockAuthService)
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
		rec := httptest.NewRecorder()
		AuthMiddleware(auth)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Rejected Token", func(t *testing.T) {
		auth := new(MockAuthService)
		auth.On("Authenticate", mock.Anything, "expired").
			Return(nil, domain.AuthenticationError("session expired, please login again"))

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()
		AuthMiddleware(auth)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, env.Message, "expired")
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Created With Token", func(t *testing.T) {
		auth := new(MockAuthService)
		handler := NewAuthHandler(auth)
		auth.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterRequest")).
			Return(&domain.User{ID: 1, Email: "farmer@test.com"}, "jwt-token", nil)

		body := `{"email":"farmer@test.com","password":"secret123","phone":"9876543210","name":"Farmer"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
	})

	t.Run("Validation Failure Maps To 400", func(t *testing.T) {
		auth := new(MockAuthService)
		handler := NewAuthHandler(auth)
		auth.On("Register", mock.Anything, mock.Anything).
			Return(nil, "", domain.ValidationError("invalid email format"))

		body := `{"email":"nope","password":"secret123","phone":"9876543210","name":"Farmer"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "invalid email format", env.Message)
	})
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	id, err := pathID(req, "id")
	assert.NoError(t, err)
	assert.Equal(t, int32(7), id)

	req = mux.SetURLVars(req, map[string]string{"id": "zero"})
	_, err = pathID(req, "id")
	assert.Error(t, err)

	req = mux.SetURLVars(req, map[string]string{"id": "-4"})
	_, err = pathID(req, "id")
	assert.Error(t, err)
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	bookings := new(MockBookingService)
	handler := NewBookingHandler(bookings)
	bookings.On("ListBookings", mock.Anything, int32(1)).
		Return(nil, assert.AnError)

	user := &domain.User{ID: 1}
	rec := httptest.NewRecorder()
	handler.List(rec, authedRequest(t, http.MethodGet, "/api/bookings", "", user))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotContains(t, env.Message, assert.AnError.Error())
}
