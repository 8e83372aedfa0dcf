package models

import "time"

// User представляет зарегистрированного пользователя доски объявлений.
// Хэш пароля наружу не сериализуется.
type User struct {
	UID          string    `json:"uid"`           // Уникальный идентификатор пользователя
	Name         string    `json:"name"`          // Отображаемое имя
	Email        string    `json:"email"`         // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`             // bcrypt-хэш пароля
	Skills       string    `json:"skills"`        // Навыки свободным текстом, через запятую
	ProfileViews int       `json:"profile_views"` // Счётчик просмотров профиля
	AppsSent     int       `json:"apps_sent"`     // Счётчик отправленных откликов
	CreatedAt    time.Time `json:"created_at"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Skills   string `json:"skills" validate:"omitempty"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Виды событий статистики профиля.
const (
	StatView        = "view"
	StatApplication = "application"
)

// DummyStatEvent используется для приёма события статистики из JSON-запроса.
type DummyStatEvent struct {
	Email string `json:"email" validate:"required,email"`
	Type  string `json:"type" validate:"required,oneof=view application"`
}
