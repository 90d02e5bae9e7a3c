package models

import "time"

// Course представляет курс, открытый для зачисления студентов.
type Course struct {
	ID              int       // Идентификатор курса
	Title           string    // Название курса
	Description     string    // Описание
	CourseStartDate time.Time // Дата начала курса
	CourseEndDate   time.Time // Дата окончания курса
	Category        string    // Категория (программирование, дизайн и т.д.)
	Level           string    // Уровень: Beginner, Intermediate, Advanced
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DummyCourse используется для приёма данных курса из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся вручную.
type DummyCourse struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	CourseStartDate string `json:"courseStartDate" validate:"required"`
	CourseEndDate   string `json:"courseEndDate" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Level           string `json:"level" validate:"required"`
}

// CourseFilter описывает параметры поиска и пагинации списка курсов.
type CourseFilter struct {
	Search string `json:"search"` // Подстрока для поиска по названию и описанию
	SortBy string `json:"sortBy"` // Поле сортировки
	Filter string `json:"filter"` // Точное совпадение уровня (без учета регистра)
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

// CoursePage — страница списка курсов с данными пагинации.
type CoursePage struct {
	Courses      []*Course `json:"courses"`
	TotalCourses int       `json:"totalCourses"`
	CurrentPage  int       `json:"currentPage"`
	TotalPages   int       `json:"totalPages"`
}
