package model

import "time"

// Role identifies what an authenticated actor may do. Teachers and uploaders
// author exams; only admins review them.
type Role string

const (
	RoleTeacher  Role = "teacher"
	RoleUploader Role = "uploader"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleTeacher, RoleUploader, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may decide moderation outcomes.
func (r Role) CanReview() bool {
	return r == RoleAdmin
}

// User represents a platform account (teacher, uploader or admin).
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the resolved identity attached to every state-mutating call.
type Actor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
