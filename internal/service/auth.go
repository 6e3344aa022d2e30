package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	if req.Email == "" || req.Password == "" || req.Phone == "" || req.Name == "" {
		return nil, "", domain.ValidationError("all fields are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, "", domain.ValidationError("invalid email format")
	}
	if !phonePattern.MatchString(req.Phone) {
		return nil, "", domain.ValidationError("invalid phone number format")
	}
	if len(req.Password) < 6 {
		return nil, "", domain.ValidationError("password must be at least 6 characters long")
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleFarmer}
	}
	for _, role := range roles {
		if !role.Valid() {
			return nil, "", domain.ValidationError("invalid role: %s", role)
		}
	}

	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, "", domain.ValidationError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:              strings.ToLower(req.Email),
		PasswordHash:       string(hash),
		Phone:              req.Phone,
		Name:               req.Name,
		Roles:              roles,
		IsVerified:         false,
		VerificationStatus: domain.VerificationStatusPending,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, roleStrings(user.Roles))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.AuthenticationError("invalid login credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.AuthenticationError("invalid login credentials")
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, roleStrings(user.Roles))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user. Used by the HTTP
// auth middleware on every protected route.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokenManager.ValidateToken(token)
	if err != nil {
		if err == security.ErrExpiredToken {
			return nil, domain.AuthenticationError("session expired, please login again")
		}
		return nil, domain.AuthenticationError("invalid token, please login again")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.AuthenticationError("user not found")
	}
	return user, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID int32, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Phone != nil {
		if !phonePattern.MatchString(*update.Phone) {
			return nil, domain.ValidationError("invalid phone number format")
		}
		user.Phone = *update.Phone
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Address != nil {
		user.Address = update.Address
	}
	if update.ShopDetails != nil {
		user.ShopDetails = update.ShopDetails
	}
	if update.ProviderDetails != nil {
		user.ProviderDetails = update.ProviderDetails
	}
	if update.FarmerDetails != nil {
		user.FarmerDetails = update.FarmerDetails
	}
	if update.OperatorDetails != nil {
		user.OperatorDetails = update.OperatorDetails
	}
	if update.LabourDetails != nil {
		user.LabourDetails = update.LabourDetails
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) AddRole(ctx context.Context, userID int32, role domain.Role, roleDetails json.RawMessage) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ValidationError("invalid role")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.AddRole(role)

	if len(roleDetails) > 0 {
		if err := applyRoleDetails(user, role, roleDetails); err != nil {
			return nil, domain.ValidationError("invalid role details: %v", err)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) RemoveRole(ctx context.Context, userID int32, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ValidationError("invalid role")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The role set must never become empty.
	if len(user.Roles) <= 1 {
		return nil, domain.ValidationError("cannot remove the only role")
	}

	user.RemoveRole(role)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateLabourAvailability(ctx context.Context, userID int32, availability *bool, seasonal []domain.SeasonalAvailability) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(domain.RoleLabour) {
		return nil, domain.ForbiddenError("user is not a labour")
	}

	if user.LabourDetails == nil {
		user.LabourDetails = &domain.LabourDetails{}
	}
	if availability != nil {
		user.LabourDetails.Availability = *availability
	}
	if seasonal != nil {
		user.LabourDetails.SeasonalAvailability = seasonal
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID int32, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.ValidationError("password must be at least 6 characters long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func applyRoleDetails(user *domain.User, role domain.Role, details json.RawMessage) error {
	switch role {
	case domain.RoleShopkeeper:
		return json.Unmarshal(details, &user.ShopDetails)
	case domain.RoleProvider:
		return json.Unmarshal(details, &user.ProviderDetails)
	case domain.RoleFarmer:
		return json.Unmarshal(details, &user.FarmerDetails)
	case domain.RoleOperator:
		return json.Unmarshal(details, &user.OperatorDetails)
	case domain.RoleLabour:
		return json.Unmarshal(details, &user.LabourDetails)
	}
	return nil
}

func roleStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
