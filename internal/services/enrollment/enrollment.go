// Package enrollment содержит бизнес-логику жизненного цикла заявок на зачисление.
//
// Заявка создается студентом в статусе Pending, преподаватель переводит её
// в Approved или Rejected. Пара (студент, курс) уникальна; повторная заявка
// отклоняется с ErrAlreadyEnrolled независимо от статуса существующей.
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

// Доменные ошибки жизненного цикла заявок.
var (
	// ErrAlreadyEnrolled — студент уже подавал заявку на этот курс.
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	// ErrNotFound — заявка с указанным идентификатором не существует.
	ErrNotFound = errors.New("enrollment not found")
)

// EnrollmentRepository определяет методы для работы с заявками в хранилище.
type EnrollmentRepository interface {
	// CreateEnrollment создает заявку в статусе Pending.
	CreateEnrollment(ctx context.Context, userUID string, courseID int) (*models.Enrollment, error)
	// UpdateEnrollmentStatus выставляет заявке новый статус.
	UpdateEnrollmentStatus(ctx context.Context, id int, status string) (*models.Enrollment, error)
	// RejectEnrollment выставляет статус и сообщение с причиной отказа.
	RejectEnrollment(ctx context.Context, id int, status, message string) (*models.Enrollment, error)
	// RemoveEnrollment удаляет заявку и возвращает количество удаленных строк.
	RemoveEnrollment(ctx context.Context, id int) (int, error)
	// ReadEnrollment возвращает заявку с данными студента и курса.
	ReadEnrollment(ctx context.Context, id int) (*models.EnrollmentInfo, error)
	// ListEnrollments возвращает все заявки.
	ListEnrollments(ctx context.Context) ([]*models.EnrollmentInfo, error)
	// ListEnrollmentsByCourse возвращает заявки на курс.
	ListEnrollmentsByCourse(ctx context.Context, courseID int) ([]*models.EnrollmentInfo, error)
	// ListEnrollmentsByUser возвращает заявки студента.
	ListEnrollmentsByUser(ctx context.Context, userUID string) ([]*models.EnrollmentInfo, error)
}

// Publisher описывает публикацию событий в очередь уведомлений.
type Publisher interface {
	Publish(message any) error
}

// EnrollmentService реализует операции жизненного цикла заявок.
type EnrollmentService struct {
	repo      EnrollmentRepository
	publisher Publisher
	log       *slog.Logger
}

// NewEnrollmentService создает новый экземпляр EnrollmentService.
//
// publisher может быть nil — тогда события о решениях не публикуются.
func NewEnrollmentService(repo EnrollmentRepository, publisher Publisher, log *slog.Logger) *EnrollmentService {
	return &EnrollmentService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Enroll создает заявку студента на курс в статусе Pending.
//
// Повторная заявка на тот же курс возвращает ErrAlreadyEnrolled:
// сигналом служит нарушение уникального индекса в базе, проверки
// "найти, потом вставить" здесь нет.
func (s *EnrollmentService) Enroll(ctx context.Context, userUID string, courseID int) (*models.Enrollment, error) {
	enrollment, err := s.repo.CreateEnrollment(ctx, userUID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return enrollment, nil
}

// Decide выставляет заявке новый статус по решению преподавателя.
//
// Повторное решение по уже рассмотренной заявке допускается и перезаписывает
// статус; результат идемпотентен.
func (s *EnrollmentService) Decide(ctx context.Context, id int, status string) (*models.Enrollment, error) {
	enrollment, err := s.repo.UpdateEnrollmentStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update enrollment status: %w", err)
	}
	s.publishDecision(enrollment)
	return enrollment, nil
}

// Reject отклоняет заявку с сообщением о причине.
//
// Сообщение сохраняется дословно, в том числе пустая строка: проверка
// на содержательность причины — забота формы на клиенте.
func (s *EnrollmentService) Reject(ctx context.Context, id int, status, message string) (*models.Enrollment, error) {
	if status == "" {
		status = models.StatusRejected
	}
	enrollment, err := s.repo.RejectEnrollment(ctx, id, status, message)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reject enrollment: %w", err)
	}
	s.publishDecision(enrollment)
	return enrollment, nil
}

// Withdraw удаляет заявку независимо от её текущего статуса.
func (s *EnrollmentService) Withdraw(ctx context.Context, id int) error {
	deleted, err := s.repo.RemoveEnrollment(ctx, id)
	if err != nil {
		return fmt.Errorf("remove enrollment: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Get возвращает заявку, обогащенную данными студента и курса.
func (s *EnrollmentService) Get(ctx context.Context, id int) (*models.EnrollmentInfo, error) {
	enrollment, err := s.repo.ReadEnrollment(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read enrollment: %w", err)
	}
	return enrollment, nil
}

// ListAll возвращает все заявки для преподавателя.
func (s *EnrollmentService) ListAll(ctx context.Context) ([]*models.EnrollmentInfo, error) {
	list, err := s.repo.ListEnrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return list, nil
}

// ListByCourse возвращает заявки на указанный курс.
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID int) ([]*models.EnrollmentInfo, error) {
	list, err := s.repo.ListEnrollmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by course: %w", err)
	}
	return list, nil
}

// ListByUser возвращает заявки указанного студента.
func (s *EnrollmentService) ListByUser(ctx context.Context, userUID string) ([]*models.EnrollmentInfo, error) {
	list, err := s.repo.ListEnrollmentsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by user: %w", err)
	}
	return list, nil
}

// publishDecision отправляет событие о решении в очередь уведомлений.
// Ошибка публикации не прерывает операцию и только логируется.
func (s *EnrollmentService) publishDecision(enrollment *models.Enrollment) {
	if s.publisher == nil {
		return
	}
	event := models.EnrollmentDecisionEvent{
		EnrollmentID: enrollment.ID,
		UserUID:      enrollment.UserUID,
		CourseID:     enrollment.CourseID,
		Status:       enrollment.Status,
		Message:      enrollment.Message,
		DecidedAt:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(event); err != nil {
		s.log.Error("failed to publish enrollment decision", sl.Err(err))
	}
}
