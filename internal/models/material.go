package models

import "time"

// Material представляет учебный материал, привязанный к курсу.
//
// Поле File хранит путь к загруженному файлу; сама загрузка выполняется
// внешним обработчиком и в доменную логику не входит.
type Material struct {
	ID          int       // Идентификатор материала
	CourseID    int       // Идентификатор курса
	Title       string    // Название материала
	Description string    // Описание
	URL         string    // Внешняя ссылка (опционально)
	ContentType string    // Тип содержимого: video, document, link
	File        string    // Путь к загруженному файлу (опционально)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DummyMaterial используется для приёма данных материала из JSON-запроса.
type DummyMaterial struct {
	CourseID    int    `json:"courseId" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	URL         string `json:"url"`
	ContentType string `json:"contentType" validate:"required"`
	File        string `json:"file"`
}

// MaterialInfo — материал, обогащенный сведениями о курсе.
type MaterialInfo struct {
	Material
	Course CourseSummary `json:"course"`
}
