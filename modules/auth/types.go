package auth

// Account roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Account is the identity view the auth flow works with. The credential store
// resolves it by email; PasswordHash is stripped before an account leaves the
// service.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Sanitized returns a copy safe to hand to callers.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}
