package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eduhub/eduhub/internal/models"
)

// CreateEnrollment вставляет новую заявку в статусе Pending и возвращает её.
//
// Уникальность пары (user_uid, course_id) обеспечивается индексом в базе:
// нарушение ограничения транслируется в ErrUniqueViolation, предварительной
// проверки на существование не выполняется.
func (s *Storage) CreateEnrollment(ctx context.Context, userUID string, courseID int) (*models.Enrollment, error) {
	const op = "repository.CreateEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO enrollments (user_uid, course_id, enrollment_date, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_uid, course_id, enrollment_date, status,
			      COALESCE(message, ''), created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query, userUID, courseID, time.Now().UTC(), models.StatusPending)

	var result models.Enrollment
	if err := row.Scan(&result.ID, &result.UserUID, &result.CourseID, &result.EnrollmentDate,
		&result.Status, &result.Message, &result.CreatedAt, &result.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%s: %w", op, ErrUniqueViolation)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateEnrollmentStatus выставляет заявке новый статус, не меняя сообщение,
// и возвращает обновленную запись.
//
// Повторное выставление терминального статуса допускается и перезаписывает
// предыдущее решение.
func (s *Storage) UpdateEnrollmentStatus(ctx context.Context, id int, status string) (*models.Enrollment, error) {
	const op = "repository.UpdateEnrollmentStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE enrollments
			  SET status = $1, updated_at = now()
			  WHERE id = $2
			  RETURNING id, user_uid, course_id, enrollment_date, status,
			      COALESCE(message, ''), created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query, status, id)

	var result models.Enrollment
	if err := row.Scan(&result.ID, &result.UserUID, &result.CourseID, &result.EnrollmentDate,
		&result.Status, &result.Message, &result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RejectEnrollment выставляет заявке статус и сообщение с причиной отказа.
//
// Сообщение сохраняется как есть, включая пустую строку.
func (s *Storage) RejectEnrollment(ctx context.Context, id int, status, message string) (*models.Enrollment, error) {
	const op = "repository.RejectEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE enrollments
			  SET status = $1, message = $2, updated_at = now()
			  WHERE id = $3
			  RETURNING id, user_uid, course_id, enrollment_date, status,
			      COALESCE(message, ''), created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query, status, message, id)

	var result models.Enrollment
	if err := row.Scan(&result.ID, &result.UserUID, &result.CourseID, &result.EnrollmentDate,
		&result.Status, &result.Message, &result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveEnrollment удаляет заявку по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveEnrollment(ctx context.Context, id int) (int, error) {
	const op = "repository.RemoveEnrollment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM enrollments WHERE id = $1`
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

const enrollmentInfoColumns = `e.id, e.user_uid, e.course_id, e.enrollment_date, e.status,
			      COALESCE(e.message, ''), e.created_at, e.updated_at,
			      u.uid, u.username, u.email, COALESCE(u.mobile, ''),
			      c.id, c.title, c.description, c.category, c.level,
			      c.course_start_date, c.course_end_date`

// ReadEnrollment возвращает заявку по ID, обогащенную данными студента и курса.
func (s *Storage) ReadEnrollment(ctx context.Context, id int) (*models.EnrollmentInfo, error) {
	const op = "repository.ReadEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentInfoColumns + `
			  FROM enrollments e
			  JOIN users u ON u.uid = e.user_uid
			  JOIN courses c ON c.id = e.course_id
			  WHERE e.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	result, err := scanEnrollmentInfo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEnrollments возвращает все заявки, обогащенные данными студентов и курсов.
//
// Внутреннее соединение исключает заявки, чей курс или пользователь
// больше не существует.
func (s *Storage) ListEnrollments(ctx context.Context) ([]*models.EnrollmentInfo, error) {
	return s.listEnrollments(ctx, "repository.ListEnrollments", "", nil)
}

// ListEnrollmentsByCourse возвращает заявки на указанный курс.
func (s *Storage) ListEnrollmentsByCourse(ctx context.Context, courseID int) ([]*models.EnrollmentInfo, error) {
	return s.listEnrollments(ctx, "repository.ListEnrollmentsByCourse", "WHERE e.course_id = $1", []any{courseID})
}

// ListEnrollmentsByUser возвращает заявки указанного студента.
func (s *Storage) ListEnrollmentsByUser(ctx context.Context, userUID string) ([]*models.EnrollmentInfo, error) {
	return s.listEnrollments(ctx, "repository.ListEnrollmentsByUser", "WHERE e.user_uid = $1", []any{userUID})
}

func (s *Storage) listEnrollments(ctx context.Context, op, where string, args []any) ([]*models.EnrollmentInfo, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentInfoColumns + `
			  FROM enrollments e
			  JOIN users u ON u.uid = e.user_uid
			  JOIN courses c ON c.id = e.course_id
			  ` + where + `
			  ORDER BY e.enrollment_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EnrollmentInfo
	for rows.Next() {
		item, err := scanEnrollmentInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnrollmentInfo(row rowScanner) (*models.EnrollmentInfo, error) {
	var item models.EnrollmentInfo
	if err := row.Scan(&item.ID, &item.UserUID, &item.CourseID, &item.EnrollmentDate,
		&item.Status, &item.Message, &item.CreatedAt, &item.UpdatedAt,
		&item.User.UID, &item.User.UserName, &item.User.Email, &item.User.Mobile,
		&item.Course.ID, &item.Course.Title, &item.Course.Description,
		&item.Course.Category, &item.Course.Level,
		&item.Course.CourseStartDate, &item.Course.CourseEndDate); err != nil {
		return nil, err
	}
	return &item, nil
}
