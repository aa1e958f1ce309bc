package models

import "time"

// Roles an account may hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Username and password constraints.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
)

// User is an account that can sign in to the admin dashboard.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Credentials is the login and create-admin request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserView is the public projection of a User.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// View projects u for responses.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Role: u.Role}
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Verification describes a valid token and its owner.
type Verification struct {
	User      *User
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

// CreateAdminResponse is the body of a successful create-admin call.
type CreateAdminResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    UserView `json:"user"`
}

// TokenInfo carries token timestamps in verify responses.
type TokenInfo struct {
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyResponse is the body of a successful verify call.
type VerifyResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	User      UserView  `json:"user"`
	TokenInfo TokenInfo `json:"tokenInfo"`
}

// LogoutResponse is the body of a successful logout.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
