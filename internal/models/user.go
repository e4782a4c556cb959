package models

// Role values for a user account.
const (
	RoleStudent = "student"
	RoleAlumni  = "alumni"
	RoleAdmin   = "admin"
)

// User represents an account in the network. Accounts are provisioned via
// seed import and are read-only at runtime; login is the only lookup path.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
	PasswordHash string `json:"-"` // Never expose this to the client
}
