package models

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Account   string    `json:"account" gorm:"type:varchar(50);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Name      string    `json:"name" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"max=255"`
	Account  string `json:"account" validate:"required,max=50"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,bcrypt_len"`
}

type UpdatePhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,bcrypt_len"`
}
