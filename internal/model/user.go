package model

import "time"

// Role is the account role stored in users.role.  Roles are ordered
// Owner > Admin > Manager > Member.
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// rank orders the roles; unknown roles rank below Member.
var rank = map[Role]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
	RoleOwner:   4,
}

// Valid reports whether r is one of the four roles.
func (r Role) Valid() bool { return rank[r] > 0 }

// AtLeast reports whether r ranks at or above min.
func (r Role) AtLeast(min Role) bool { return r.Valid() && rank[r] >= rank[min] }

// RolesAtLeast returns every role ranking at or above min, highest first.
// RolesAtLeast(RoleManager) is the Owner/Admin/Manager allow-set.
func RolesAtLeast(min Role) []Role {
	var out []Role
	for _, r := range []Role{RoleOwner, RoleAdmin, RoleManager, RoleMember} {
		if r.AtLeast(min) {
			out = append(out, r)
		}
	}
	return out
}

// User represents an application user record as stored in the `users`
// table.  PasswordHash never leaves the server.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Username     string    `json:"username"`   // users.username (unique)
	Email        string    `json:"email"`      // users.email (unique, lower-cased)
	PasswordHash string    `json:"-"`          // users.password_hash (bcrypt)
	Role         Role      `json:"role"`       // users.role
	IsActive     bool      `json:"is_active"`  // users.is_active
	CreatedAt    time.Time `json:"created_at"` // users.created_at
	UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
