package models

import "time"

// Статусы заявки на зачисление.
//
// Заявка создается в статусе Pending. Преподаватель переводит её в Approved
// или Rejected; повторное выставление терминального статуса допускается
// и перезаписывает предыдущее решение.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Enrollment представляет заявку студента на зачисление на курс.
//
// Пара (UserUID, CourseID) уникальна: повторная заявка на тот же курс
// отклоняется на уровне ограничения в базе данных.
type Enrollment struct {
	ID             int       `json:"id"`             // Идентификатор заявки
	UserUID        string    `json:"userId"`         // Идентификатор студента
	CourseID       int       `json:"courseId"`       // Идентификатор курса
	EnrollmentDate time.Time `json:"enrollmentDate"` // Дата подачи заявки
	Status         string    `json:"status"`         // Pending, Approved или Rejected
	Message        string    `json:"message,omitempty"` // Причина отказа (заполняется при Rejected)
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DecisionRequest — решение преподавателя по заявке.
type DecisionRequest struct {
	Status  string `json:"status" validate:"required,oneof=Pending Approved Rejected"`
	Message string `json:"message"` // Может быть пустым, сохраняется как есть
}

// UserSummary — краткие сведения о студенте для обогащенных списков заявок.
type UserSummary struct {
	UID      string `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
}

// CourseSummary — краткие сведения о курсе для обогащенных списков заявок.
type CourseSummary struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	Level           string    `json:"level,omitempty"`
	CourseStartDate time.Time `json:"courseStartDate,omitempty"`
	CourseEndDate   time.Time `json:"courseEndDate,omitempty"`
}

// EnrollmentInfo — заявка, обогащенная данными студента и курса.
//
// Строки с несуществующим курсом или пользователем не попадают в выборку.
type EnrollmentInfo struct {
	Enrollment
	User   UserSummary   `json:"user"`
	Course CourseSummary `json:"course"`
}

// EnrollmentDecisionEvent — событие для очереди уведомлений о решении по заявке.
type EnrollmentDecisionEvent struct {
	EnrollmentID int       `json:"enrollment_id"`
	UserUID      string    `json:"user_uid"`
	CourseID     int       `json:"course_id"`
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	DecidedAt    time.Time `json:"decided_at"`
}
