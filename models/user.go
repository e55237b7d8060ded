package models

import "time"

// User is the profile row kept next to the platform identity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func UserFromRow(row map[string]interface{}) User {
	return User{
		ID:        stringValue(row["id"]),
		Name:      stringValue(row["name"]),
		Phone:     stringValue(row["phone"]),
		Email:     stringValue(row["email"]),
		CreatedAt: timeValue(row["created_at"]),
		UpdatedAt: timeValue(row["updated_at"]),
	}
}
