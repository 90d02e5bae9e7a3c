package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eduhub/eduhub/internal/models"
)

// CreateCourse вставляет новый курс и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	const op = "repository.CreateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (title, description, course_start_date, course_end_date,
			      category, level)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Description, course.CourseStartDate, course.CourseEndDate,
		course.Category, course.Level).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCourse возвращает данные курса по его ID.
func (s *Storage) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "repository.ReadCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, course_start_date, course_end_date,
				  category, level, created_at, updated_at
			  FROM courses WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Course
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.CourseStartDate,
		&result.CourseEndDate, &result.Category, &result.Level,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateCourse обновляет данные курса по его ID и возвращает обновленную запись.
func (s *Storage) UpdateCourse(ctx context.Context, course models.Course, id int) (*models.Course, error) {
	const op = "repository.UpdateCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = $1, description = $2, course_start_date = $3,
			      course_end_date = $4, category = $5, level = $6, updated_at = now()
			  WHERE id = $7
			  RETURNING id, title, description, course_start_date, course_end_date,
			      category, level, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Description, course.CourseStartDate, course.CourseEndDate,
		course.Category, course.Level, id)

	var result models.Course
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.CourseStartDate,
		&result.CourseEndDate, &result.Category, &result.Level,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveCourse удаляет курс по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCourse(ctx context.Context, id int) (int, error) {
	const op = "repository.RemoveCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM courses WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCourses возвращает страницу курсов по фильтру и общее количество подходящих записей.
//
// Поиск выполняется подстрокой без учета регистра по названию и описанию,
// фильтр — точным совпадением уровня.
func (s *Storage) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int, error) {
	const op = "repository.ListCourses"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where := `WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		        AND ($2 = '' OR lower(level) = lower($2))`

	var total int
	countQuery := `SELECT COUNT(*) FROM courses ` + where
	if err := s.DB.QueryRowContext(ctx, countQuery, filter.Search, filter.Filter).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	orderBy := "created_at DESC"
	switch filter.SortBy {
	case "title":
		orderBy = "title ASC"
	case "courseStartDate":
		orderBy = "course_start_date ASC"
	case "level":
		orderBy = "level ASC"
	}
	offset := (filter.Page - 1) * filter.Limit
	query := `SELECT id, title, description, course_start_date, course_end_date,
			      category, level, created_at, updated_at
			  FROM courses ` + where + `
			  ORDER BY ` + orderBy + `
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, filter.Search, filter.Filter, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.CourseStartDate,
			&item.CourseEndDate, &item.Category, &item.Level,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}
