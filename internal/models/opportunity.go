// Package models содержит доменные структуры доски объявлений:
// объявления (вакансии, стажировки, воркшопы), пользователей и
// вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Opportunity представляет собой опубликованное объявление.
// Deadline может быть nil — это означает бессрочное объявление,
// которое никогда не удаляется автоматически.
type Opportunity struct {
	ID             int        `json:"id"`                    // Идентификатор, назначается хранилищем
	Title          string     `json:"title"`                 // Заголовок объявления
	Type           string     `json:"type"`                  // Категория: Job, Internship, Workshop и т.п.
	SkillsRequired []string   `json:"skills_required"`       // Требуемые навыки
	Description    string     `json:"description,omitempty"` // Описание (опционально)
	PostedBy       string     `json:"posted_by,omitempty"`   // E-mail автора; пустой на старых записях
	Deadline       *time.Time `json:"deadline,omitempty"`    // Срок актуальности
	CreatedAt      time.Time  `json:"created_at"`            // Момент создания, неизменяемый
}

// DummyOpportunity используется для приёма данных объявления из JSON-запроса.
// Deadline приходит строкой в формате 02-01-2006 и парсится вручную.
type DummyOpportunity struct {
	Title          string   `json:"title" validate:"required"`
	Type           string   `json:"type" validate:"omitempty"`
	SkillsRequired []string `json:"skills_required" validate:"omitempty"`
	Description    string   `json:"description" validate:"omitempty"`
	Deadline       string   `json:"deadline" validate:"omitempty"`
}

// ScoredOpportunity — объявление с опциональным процентом совпадения
// навыков кандидата. MatchScore равен nil, если навыки не передавались.
type ScoredOpportunity struct {
	Opportunity
	MatchScore *int `json:"match_score,omitempty"`
}

// ReminderInfo — сообщение для очереди напоминаний о дедлайне,
// истекающем на следующий день.
type ReminderInfo struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Deadline time.Time `json:"deadline"`
}
