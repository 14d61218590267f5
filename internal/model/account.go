package model

import "time"

// Role names stored in the `account` table. Client accounts can write
// reviews; Employee and Admin accounts additionally manage inventory,
// classifications and review responses.
const (
	RoleClient   = "Client"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// Privileged reports whether the given role may mutate inventory data and
// respond to reviews.
func Privileged(role string) bool {
	return role == RoleEmployee || role == RoleAdmin
}

// Account represents an application account record as stored in the
// `account` table. Each field corresponds to a column in the database.
// PasswordHash never leaves the repository and handler layers; the
// identity token embeds every field except the hash.
//
// Fields:
//
//	ID           - primary key identifier of the account.
//	FirstName    - account holder's first name.
//	LastName     - account holder's last name.
//	Email        - unique email address (stored lower-cased).
//	PasswordHash - bcrypt hashed password.
//	Role         - role name (Client, Employee or Admin).
//	CreatedAt    - timestamp of creation.
//	UpdatedAt    - timestamp of last update.
type Account struct {
	ID           uint64    // account.id
	FirstName    string    // account.first_name
	LastName     string    // account.last_name
	Email        string    // account.email
	PasswordHash string    // account.password_hash
	Role         string    // account.role
	CreatedAt    time.Time // account.created_at
	UpdatedAt    time.Time // account.updated_at
}
