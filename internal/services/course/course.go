// Package services содержит бизнес-логику каталога курсов, включая кеширование.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/models"
	"github.com/eduhub/eduhub/internal/storage/repository"
)

// ErrNotFound — курс с указанным идентификатором не существует.
var ErrNotFound = errors.New("course not found")

// dateLayout — формат дат курса в JSON-запросах.
const dateLayout = "2006-01-02"

// CourseRepository определяет методы для работы с курсами в хранилище.
type CourseRepository interface {
	// CreateCourse добавляет новый курс и возвращает его ID.
	CreateCourse(ctx context.Context, course models.Course) (int, error)
	// ReadCourse возвращает курс по ID.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// UpdateCourse обновляет данные курса по ID.
	UpdateCourse(ctx context.Context, course models.Course, id int) (*models.Course, error)
	// RemoveCourse удаляет курс по ID и возвращает количество удалённых записей.
	RemoveCourse(ctx context.Context, id int) (int, error)
	// ListCourses возвращает страницу курсов и общее количество по фильтру.
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CourseService реализует бизнес-логику каталога курсов.
type CourseService struct {
	repo  CourseRepository
	cache Cache
	log   *slog.Logger
}

// NewCourseService создает новый экземпляр CourseService.
func NewCourseService(repo CourseRepository, cache Cache, log *slog.Logger) *CourseService {
	return &CourseService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает страницу курсов по фильтру поиска.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) (*models.CoursePage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	courses, total, err := s.repo.ListCourses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	return &models.CoursePage{
		Courses:      courses,
		TotalCourses: total,
		CurrentPage:  filter.Page,
		TotalPages:   totalPages,
	}, nil
}

// Get возвращает курс по ID, используя кеш.
func (s *CourseService) Get(ctx context.Context, id int) (*models.Course, error) {
	cacheKey := fmt.Sprintf("course:%d", id)

	var cached models.Course
	if ok, err := s.cache.Get(cacheKey, &cached); err != nil {
		s.log.Error("failed to read course from cache", sl.Err(err))
	} else if ok {
		return &cached, nil
	}

	course, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read course: %w", err)
	}

	if err := s.cache.Set(cacheKey, course, time.Hour); err != nil {
		s.log.Error("failed to cache course", sl.Err(err))
	}
	return course, nil
}

// Create создает новый курс из данных запроса и возвращает его ID.
func (s *CourseService) Create(ctx context.Context, req models.DummyCourse) (int, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateCourse(ctx, *course)
	if err != nil {
		return 0, fmt.Errorf("create course: %w", err)
	}
	return id, nil
}

// Update обновляет курс по ID и сбрасывает его кеш.
func (s *CourseService) Update(ctx context.Context, req models.DummyCourse, id int) (*models.Course, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateCourse(ctx, *course, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	s.invalidate(id)
	return updated, nil
}

// Delete удаляет курс по ID и сбрасывает его кеш.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.RemoveCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("remove course: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	s.invalidate(id)
	return nil
}

func (s *CourseService) invalidate(id int) {
	if err := s.cache.Invalidate(fmt.Sprintf("course:%d", id)); err != nil {
		s.log.Error("failed to invalidate course cache", sl.Err(err))
	}
}

func courseFromRequest(req models.DummyCourse) (*models.Course, error) {
	startDate, err := time.Parse(dateLayout, req.CourseStartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid course start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, req.CourseEndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid course end date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("course end date must not be earlier than start date")
	}
	return &models.Course{
		Title:           req.Title,
		Description:     req.Description,
		CourseStartDate: startDate,
		CourseEndDate:   endDate,
		Category:        req.Category,
		Level:           req.Level,
	}, nil
}
