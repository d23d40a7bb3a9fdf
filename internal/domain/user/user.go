package user

import "time"

const (
	StatusEnabled  = 1
	StatusDisabled = 0
)

// User is a registered account. PasswordHash never leaves the backend;
// handlers expose Info instead.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Avatar       *string
	CreatedAt    time.Time
	LastLogin    *time.Time
	Status       int
}

// Info is the outward-facing view of a user.
type Info struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Avatar    *string    `json:"avatar,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Status    int        `json:"status"`
}

// Info returns the safe view of u.
func (u *User) Info() Info {
	return Info{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Status:    u.Status,
	}
}

// Patch lists the profile fields a user may change; nil means unchanged.
// PasswordHash must already be hashed by the caller.
type Patch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Avatar       *string
}

func (p Patch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil && p.Avatar == nil
}
