package model

import "time"

type Subject struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	MaxSessionsPerWeek int       `json:"max_sessions_per_week"` // недельная квота слотов на пару (пользователь, предмет)
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SubjectSnapshot срез данных предмета для обогащённого представления слота
type SubjectSnapshot struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	MaxSessionsPerWeek int    `json:"max_sessions_per_week"`
}
