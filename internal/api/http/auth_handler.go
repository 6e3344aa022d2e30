package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/service"
)

// AuthHandler serves registration, login and profile routes.
type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type authPayload struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

type registerRequest struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Phone    string        `json:"phone"`
	Name     string        `json:"name"`
	Roles    []domain.Role `json:"roles,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, token, err := h.auth.Register(r.Context(), service.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Name:     req.Name,
		Roles:    req.Roles,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, "user registered successfully", authPayload{User: user, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "login successful", authPayload{User: user, Token: token})
}

// Logout is a no-op with stateless tokens; the client drops the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, "logged out successfully", nil)
}

// CheckAuth confirms the bearer token resolves to an active account.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}
	respondData(w, http.StatusOK, "authenticated", authPayload{User: user})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	profile, err := h.auth.GetProfile(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", profile)
}

type profileUpdateRequest struct {
	Name            *string                 `json:"name,omitempty"`
	Phone           *string                 `json:"phone,omitempty"`
	Address         *domain.Address         `json:"address,omitempty"`
	ShopDetails     *domain.ShopDetails     `json:"shopDetails,omitempty"`
	ProviderDetails *domain.ProviderDetails `json:"providerDetails,omitempty"`
	FarmerDetails   *domain.FarmerDetails   `json:"farmerDetails,omitempty"`
	OperatorDetails *domain.OperatorDetails `json:"operatorDetails,omitempty"`
	LabourDetails   *domain.LabourDetails   `json:"labourDetails,omitempty"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	var req profileUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, service.ProfileUpdate{
		Name:            req.Name,
		Phone:           req.Phone,
		Address:         req.Address,
		ShopDetails:     req.ShopDetails,
		ProviderDetails: req.ProviderDetails,
		FarmerDetails:   req.FarmerDetails,
		OperatorDetails: req.OperatorDetails,
		LabourDetails:   req.LabourDetails,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "profile updated successfully", updated)
}

type roleRequest struct {
	Role        domain.Role     `json:"role"`
	RoleDetails json.RawMessage `json:"roleDetails,omitempty"`
}

func (h *AuthHandler) AddRole(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	var req roleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.auth.AddRole(r.Context(), user.ID, req.Role, req.RoleDetails)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "role added successfully", updated)
}

func (h *AuthHandler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	var req roleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.auth.RemoveRole(r.Context(), user.ID, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "role removed successfully", updated)
}

type labourAvailabilityRequest struct {
	Availability *bool                         `json:"availability,omitempty"`
	Seasonal     []domain.SeasonalAvailability `json:"seasonalAvailability,omitempty"`
}

func (h *AuthHandler) UpdateLabourAvailability(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	var req labourAvailabilityRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.auth.UpdateLabourAvailability(r.Context(), user.ID, req.Availability, req.Seasonal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "availability updated successfully", updated)
}

type passwordRequest struct {
	Password string `json:"password"`
}

// UpdatePassword changes the password for the account in the path. Only
// the account owner may change it.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
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
	if id != user.ID {
		respondError(w, domain.ForbiddenError("not authorized"))
		return
	}

	var req passwordRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.auth.UpdatePassword(r.Context(), user.ID, req.Password); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "password updated successfully", nil)
}

// pathID parses an int32 id from the route variables.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid %s", name)
	}
	return int32(id), nil
}
