package domain

// Role is the access class of an authenticated user. The platform runs a
// two-role system: accounts are created by administrators, public signup
// does not exist.
const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

// Profile models the authenticated user's identity record as served by the
// upstream detection service. Role-specific fields are optional and only
// populated for doctor accounts.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`

	// Doctor-specific fields.
	Degree          string `json:"degree,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	ExperienceYears int    `json:"experience_years,omitempty"`
	MobileNumber    string `json:"mobile_number,omitempty"`
}

// LoginResult is the upstream's answer to a successful credential exchange.
// The access token is an opaque bearer string carrying an expiry claim; the
// portal never verifies its signature (the upstream holds the key) and only
// decodes the expiry as a local optimization.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	Role        string `json:"role"`
	Email       string `json:"email,omitempty"`
}
