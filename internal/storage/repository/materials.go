package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eduhub/eduhub/internal/models"
)

// CreateMaterial вставляет новый учебный материал и возвращает его.
func (s *Storage) CreateMaterial(ctx context.Context, material models.Material) (*models.Material, error) {
	const op = "repository.CreateMaterial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO materials (course_id, title, description, url, content_type, file)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, course_id, title, description, COALESCE(url, ''),
			      content_type, COALESCE(file, ''), created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query,
		material.CourseID, material.Title, material.Description, material.URL,
		material.ContentType, material.File)

	var result models.Material
	if err := scanMaterial(row, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ReadMaterial возвращает материал по его ID.
func (s *Storage) ReadMaterial(ctx context.Context, id int) (*models.Material, error) {
	const op = "repository.ReadMaterial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, COALESCE(url, ''),
			      content_type, COALESCE(file, ''), created_at, updated_at
			  FROM materials WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Material
	if err := scanMaterial(row, &result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateMaterial обновляет данные материала по его ID и возвращает обновленную запись.
//
// Пустой путь к файлу оставляет прежний файл без изменений.
func (s *Storage) UpdateMaterial(ctx context.Context, material models.Material, id int) (*models.Material, error) {
	const op = "repository.UpdateMaterial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE materials
			  SET course_id = $1, title = $2, description = $3, url = $4,
			      content_type = $5, file = COALESCE(NULLIF($6, ''), file),
			      updated_at = now()
			  WHERE id = $7
			  RETURNING id, course_id, title, description, COALESCE(url, ''),
			      content_type, COALESCE(file, ''), created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query,
		material.CourseID, material.Title, material.Description, material.URL,
		material.ContentType, material.File, id)

	var result models.Material
	if err := scanMaterial(row, &result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveMaterial удаляет материал по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveMaterial(ctx context.Context, id int) (int, error) {
	const op = "repository.RemoveMaterial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM materials WHERE id = $1`
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

// ListMaterials возвращает все материалы, обогащенные сведениями о курсе.
func (s *Storage) ListMaterials(ctx context.Context) ([]*models.MaterialInfo, error) {
	const op = "repository.ListMaterials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.course_id, m.title, m.description, COALESCE(m.url, ''),
			      m.content_type, COALESCE(m.file, ''), m.created_at, m.updated_at,
			      c.id, c.title, c.category, c.level
			  FROM materials m
			  JOIN courses c ON c.id = m.course_id
			  ORDER BY m.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MaterialInfo
	for rows.Next() {
		var item models.MaterialInfo
		if err := rows.Scan(&item.ID, &item.CourseID, &item.Title, &item.Description, &item.URL,
			&item.ContentType, &item.File, &item.CreatedAt, &item.UpdatedAt,
			&item.Course.ID, &item.Course.Title, &item.Course.Category, &item.Course.Level); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListMaterialsByCourse возвращает материалы указанного курса.
func (s *Storage) ListMaterialsByCourse(ctx context.Context, courseID int) ([]*models.Material, error) {
	const op = "repository.ListMaterialsByCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, description, COALESCE(url, ''),
			      content_type, COALESCE(file, ''), created_at, updated_at
			  FROM materials
			  WHERE course_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Material
	for rows.Next() {
		var item models.Material
		if err := scanMaterial(rows, &item); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanMaterial(row rowScanner, item *models.Material) error {
	return row.Scan(&item.ID, &item.CourseID, &item.Title, &item.Description, &item.URL,
		&item.ContentType, &item.File, &item.CreatedAt, &item.UpdatedAt)
}
