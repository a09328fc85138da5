package models

// Account roles.
const (
	RolePatient    = "patient"
	RoleDoctor     = "doctor"
	RolePharmacist = "pharmacist"
)

// RegisterRequest is the payload for account registration. The role decides
// which of the optional role-specific fields are required.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`

	// Patient fields.
	Age    int     `json:"age,omitempty"`
	Height float64 `json:"height,omitempty"`
	Weight float64 `json:"weight,omitempty"`

	// Doctor fields.
	Specialization string `json:"specialization,omitempty"`
	College        string `json:"college,omitempty"`

	// Doctor and pharmacist fields.
	YearsOfExperience int    `json:"yearsOfExperience,omitempty"`
	LicenseNumber     string `json:"licenseNumber,omitempty"`

	// Pharmacist fields.
	Pharmacy string `json:"pharmacy,omitempty"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
	Role  string `json:"role"`
}
