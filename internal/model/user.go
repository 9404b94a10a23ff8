package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Cedula       string    `json:"cedula"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"` // student или teacher
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSnapshot срез данных пользователя для обогащённого представления слота
type UserSnapshot struct {
	ID     int64  `json:"id"`
	Cedula string `json:"cedula"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}
