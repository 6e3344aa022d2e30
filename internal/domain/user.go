package domain

import "time"

type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleProvider   Role = "provider"
	RoleShopkeeper Role = "shopkeeper"
	RoleOperator   Role = "operator"
	RoleAdmin      Role = "admin"
	RoleLabour     Role = "labour"
)

// AllRoles lists every role a user may hold.
var AllRoles = []Role{RoleFarmer, RoleProvider, RoleShopkeeper, RoleOperator, RoleAdmin, RoleLabour}

func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

type Address struct {
	Street      string    `json:"street,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Pincode     string    `json:"pincode,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"` // [longitude, latitude]
}

type OpeningHours struct {
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

type ShopDetails struct {
	ShopName           string       `json:"shop_name,omitempty"`
	ShopType           string       `json:"shop_type,omitempty"`
	RegistrationNumber string       `json:"registration_number,omitempty"`
	OpeningHours       OpeningHours `json:"opening_hours,omitempty"`
}

type ServiceArea struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

type ProviderDetails struct {
	BusinessName string        `json:"business_name,omitempty"`
	Experience   int32         `json:"experience,omitempty"`
	ServiceArea  []ServiceArea `json:"service_area,omitempty"`
}

type FarmerDetails struct {
	FarmSizeAcres float64  `json:"farm_size_acres,omitempty"`
	PrimaryCrops  []string `json:"primary_crops,omitempty"`
	FarmingType   []string `json:"farming_type,omitempty"`
}

type OperatorDetails struct {
	Experience      int32    `json:"experience,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
	Licenses        []string `json:"licenses,omitempty"`
	Availability    bool     `json:"availability"`
}

type SeasonalAvailability struct {
	Season      string `json:"season"`
	IsAvailable bool   `json:"is_available"`
}

type LabourDetails struct {
	Skills               []string               `json:"skills,omitempty"`
	Experience           int32                  `json:"experience,omitempty"`
	DailyWageCents       int32                  `json:"daily_wage_cents,omitempty"`
	Availability         bool                   `json:"availability"`
	PreferredWorkTypes   []string               `json:"preferred_work_types,omitempty"`
	Languages            []string               `json:"languages,omitempty"`
	PreferredLocations   []ServiceArea          `json:"preferred_locations,omitempty"`
	SeasonalAvailability []SeasonalAvailability `json:"seasonal_availability,omitempty"`
}

// User is a marketplace account. A user holds at least one role; the
// per-role detail blocks are populated only for roles the user holds.
type User struct {
	ID                 int32              `json:"id"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	Phone              string             `json:"phone"`
	Name               string             `json:"name"`
	Roles              []Role             `json:"roles"`
	Address            *Address           `json:"address,omitempty"`
	ShopDetails        *ShopDetails       `json:"shop_details,omitempty"`
	ProviderDetails    *ProviderDetails   `json:"provider_details,omitempty"`
	FarmerDetails      *FarmerDetails     `json:"farmer_details,omitempty"`
	OperatorDetails    *OperatorDetails   `json:"operator_details,omitempty"`
	LabourDetails      *LabourDetails     `json:"labour_details,omitempty"`
	IsVerified         bool               `json:"is_verified"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedOn          time.Time          `json:"created_on"`
	UpdatedOn          time.Time          `json:"updated_on"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AddRole appends role to the user's role set. Adding a role the user
// already holds is a no-op.
func (u *User) AddRole(role Role) {
	if u.HasRole(role) {
		return
	}
	u.Roles = append(u.Roles, role)
}

// RemoveRole drops role from the user's role set. Removing an absent
// role is a no-op. Callers must ensure at least one role remains.
func (u *User) RemoveRole(role Role) {
	kept := u.Roles[:0]
	for _, r := range u.Roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	u.Roles = kept
}

// UserSummary is the projection of a user embedded in other resources.
type UserSummary struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
