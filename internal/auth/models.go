package auth

import "strings"

// Role is the user's role in the marketplace.
type Role string

const (
	RoleTenant   Role = "TENANT"
	RoleLandlord Role = "LANDLORD"
	RoleAdmin    Role = "ADMIN"
)

// Routes the coordinator navigates to. Route rendering itself is out of
// scope; these are opaque identifiers handed to the Navigator.
const (
	RouteLogin        = "/auth/login"
	RouteUnauthorized = "/401"

	RouteTenantDashboard   = "/tenant/dashboard"
	RouteLandlordDashboard = "/landlord/dashboard"
	RouteAdminDashboard    = "/admin/dashboard"
)

// DashboardRoute returns the post-auth landing route for a role.
func DashboardRoute(r Role) string {
	switch r {
	case RoleLandlord:
		return RouteLandlordDashboard
	case RoleAdmin:
		return RouteAdminDashboard
	default:
		return RouteTenantDashboard
	}
}

// Session is the in-memory record of the authenticated identity. It is never
// persisted; only the token pair is.
type Session struct {
	UserID     int64  `json:"userId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       Role   `json:"role"`
	IsActive   bool   `json:"isActive"`
	IsVerified bool   `json:"isVerified"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration form. First and last name are combined
// into a single fullName field on the wire.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// registerPayload is the wire shape the backend expects for registration.
type registerPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AuthResponse is the backend's login/register response.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Role         Role   `json:"role"`
	Message      string `json:"message,omitempty"`
}

// TokenRefreshResponse is the backend's refresh response.
type TokenRefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// splitFullName divides a combined name at the first space; everything after
// it, including further spaces, belongs to the last name.
func splitFullName(full string) (first, last string) {
	parts := strings.SplitN(full, " ", 2)
	first = parts[0]
	if len(parts) == 2 {
		last = parts[1]
	}
	return first, last
}

func sessionFromAuthResponse(r *AuthResponse) Session {
	first, last := splitFullName(r.FullName)
	return Session{
		UserID:     r.UserID,
		Email:      r.Email,
		FirstName:  first,
		LastName:   last,
		Role:       r.Role,
		IsActive:   true,
		IsVerified: true,
	}
}
