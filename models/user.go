package models

import "time"

// Role determines which screens and home route apply to an identity.
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated user's public view: id, email, display name and role.
type Identity struct {
	ID    string `bson:"id" json:"id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
	Role  Role   `bson:"role" json:"role"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// User is the full stored user record. PasswordHash and TokenHash never leave
// the repository layer.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Role         Role      `bson:"role" json:"role"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      *Address  `bson:"address,omitempty" json:"address,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Safe returns the public identity view of the user.
func (u *User) Safe() Identity {
	return Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		Phone: u.Phone,
	}
}

// Address is a postal address attached to a user or a booking.
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zip_code" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterData carries a registration request. Role is optional and defaults
// to RoleUser; it is never derived from the email address.
type RegisterData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     Role   `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Availability describes one weekly availability window for a provider.
type Availability struct {
	DayOfWeek   int    `bson:"day_of_week" json:"dayOfWeek"` // 0-6, Sunday to Saturday
	StartTime   string `bson:"start_time" json:"startTime"`  // HH:mm
	EndTime     string `bson:"end_time" json:"endTime"`      // HH:mm
	IsAvailable bool   `bson:"is_available" json:"isAvailable"`
}
