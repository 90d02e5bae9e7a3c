// Package models содержит доменные структуры EduHub: пользователи, курсы,
// учебные материалы и заявки на зачисление.
package models

import "time"

// Роли пользователей системы.
const (
	RoleStudent  = "student"
	RoleEducator = "educator"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	UserName     string    // Имя пользователя
	Email        string    // Электронная почта (уникальная)
	Mobile       string    // Номер телефона (опционально)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя: student или educator
	CreatedAt    time.Time // Дата регистрации
}

// RegisterRequest используется для приёма данных регистрации из JSON-запроса.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=50"` // Имя пользователя
	Email    string `json:"email" validate:"required,email"`           // Электронная почта
	Mobile   string `json:"mobile" validate:"omitempty,len=10,numeric"` // Телефон, 10 цифр
	Password string `json:"password" validate:"required,min=6"`        // Пароль (>= 6 символов)
	Role     string `json:"role" validate:"omitempty,oneof=student educator"`
}

// LoginRequest используется для приёма учётных данных при входе.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
