// Package services содержит бизнес-логику учебных материалов курсов.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduhub/eduhub/internal/models"
	"github.com/eduhub/eduhub/internal/storage/repository"
)

// ErrNotFound — материал с указанным идентификатором не существует.
var ErrNotFound = errors.New("material not found")

// MaterialRepository определяет методы для работы с материалами в хранилище.
type MaterialRepository interface {
	// CreateMaterial добавляет новый материал и возвращает его.
	CreateMaterial(ctx context.Context, material models.Material) (*models.Material, error)
	// ReadMaterial возвращает материал по ID.
	ReadMaterial(ctx context.Context, id int) (*models.Material, error)
	// UpdateMaterial обновляет данные материала по ID.
	UpdateMaterial(ctx context.Context, material models.Material, id int) (*models.Material, error)
	// RemoveMaterial удаляет материал по ID и возвращает количество удалённых записей.
	RemoveMaterial(ctx context.Context, id int) (int, error)
	// ListMaterials возвращает все материалы со сведениями о курсах.
	ListMaterials(ctx context.Context) ([]*models.MaterialInfo, error)
	// ListMaterialsByCourse возвращает материалы указанного курса.
	ListMaterialsByCourse(ctx context.Context, courseID int) ([]*models.Material, error)
}

// MaterialService реализует бизнес-логику учебных материалов.
type MaterialService struct {
	repo MaterialRepository
}

// NewMaterialService создает новый экземпляр MaterialService.
func NewMaterialService(repo MaterialRepository) *MaterialService {
	return &MaterialService{repo: repo}
}

// Create добавляет новый материал курса.
func (s *MaterialService) Create(ctx context.Context, req models.DummyMaterial) (*models.Material, error) {
	material := models.Material{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ContentType: req.ContentType,
		File:        req.File,
	}
	created, err := s.repo.CreateMaterial(ctx, material)
	if err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	return created, nil
}

// Get возвращает материал по ID.
func (s *MaterialService) Get(ctx context.Context, id int) (*models.Material, error) {
	material, err := s.repo.ReadMaterial(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read material: %w", err)
	}
	return material, nil
}

// Update обновляет материал по ID.
func (s *MaterialService) Update(ctx context.Context, req models.DummyMaterial, id int) (*models.Material, error) {
	material := models.Material{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ContentType: req.ContentType,
		File:        req.File,
	}
	updated, err := s.repo.UpdateMaterial(ctx, material, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update material: %w", err)
	}
	return updated, nil
}

// Delete удаляет материал по ID.
func (s *MaterialService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.RemoveMaterial(ctx, id)
	if err != nil {
		return fmt.Errorf("remove material: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// List возвращает все материалы со сведениями о курсах.
func (s *MaterialService) List(ctx context.Context) ([]*models.MaterialInfo, error) {
	list, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return list, nil
}

// ListByCourse возвращает материалы указанного курса.
func (s *MaterialService) ListByCourse(ctx context.Context, courseID int) ([]*models.Material, error) {
	list, err := s.repo.ListMaterialsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list materials by course: %w", err)
	}
	return list, nil
}
