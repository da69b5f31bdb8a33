package user

import "time"

// User is a purchaser account.
type User struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"full_name"`
	Mobile       string    `json:"mobile"`
	Address      string    `json:"address"`
	PinCode      *string   `json:"pin_code,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterInput struct {
	FullName        string `json:"full_name" validate:"required"`
	Mobile          string `json:"mobile" validate:"required,len=10,digits"`
	Address         string `json:"address" validate:"required"`
	PinCode         string `json:"pin_code"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Prefill is the shipping form seeded from the profile.
type Prefill struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	PinCode  string `json:"pin_code"`
	Mobile   string `json:"mobile"`
}
