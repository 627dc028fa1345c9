// internal/identity/domain.go
package identity

// User statuses. A BLOCKED user can no longer log in; admins toggle the flag
// from the user management screen.
const (
	StatusActive  = "ACTIVE"
	StatusBlocked = "BLOCKED"
)

// RoleAdmin gates the admin console. Role checks here are a navigation
// convenience only; the backend enforces authorization on every call.
const RoleAdmin = "ADMIN"

// User is an account as the backend returns it.
type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Status   string   `json:"status,omitempty"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Registration is the sign-up payload.
type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

// LoginResult is what a successful login returns: the bearer token and the
// authenticated user's profile.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
