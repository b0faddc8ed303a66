package domain

import "time"

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// CanAccessPurchase reports whether the user may read the given purchase.
// Admins see everything, clients only their own purchases.
func (u User) CanAccessPurchase(p Purchase) bool {
	return u.Role == RoleAdmin || u.ID == p.ClientID
}
