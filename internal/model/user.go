package model

import "time"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a user in the authentication system. ResetToken and
// ResetTokenExpiresAt are either both nil or both set.
type User struct {
	ID                  string     `bson:"_id"`
	Name                string     `bson:"name"`
	Email               string     `bson:"email"`
	PasswordHash        string     `bson:"password_hash"`
	Role                Role       `bson:"role"`
	ResetToken          *string    `bson:"reset_token,omitempty"`
	ResetTokenExpiresAt *time.Time `bson:"reset_token_expires_at,omitempty"`
	CreatedAt           time.Time  `bson:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at"`
}

// Profile is the public view of a user. It never carries the password hash
// or reset token fields.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Profile returns the public view of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
