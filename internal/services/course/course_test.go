package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/eduhub/eduhub/internal/models"
	"github.com/eduhub/eduhub/internal/storage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	args := m.Called(ctx, course)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}
func (m *RepoMock) UpdateCourse(ctx context.Context, course models.Course, id int) (*models.Course, error) {
	args := m.Called(ctx, course, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}
func (m *RepoMock) RemoveCourse(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Course), args.Int(1), args.Error(2)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCourseService_List(t *testing.T) {
	courses := []*models.Course{
		{ID: 1, Title: "Go Basics"},
		{ID: 2, Title: "Advanced Go"},
	}

	tests := []struct {
		name       string
		filter     models.CourseFilter
		setupMocks func(r *RepoMock)
		want       *models.CoursePage
		wantErr    bool
	}{
		{
			name:   "defaults page and limit",
			filter: models.CourseFilter{},
			setupMocks: func(r *RepoMock) {
				r.On("ListCourses", mock.Anything, models.CourseFilter{Page: 1, Limit: 10}).
					Return(courses, 2, nil).Once()
			},
			want: &models.CoursePage{
				Courses:      courses,
				TotalCourses: 2,
				CurrentPage:  1,
				TotalPages:   1,
			},
		},
		{
			name:   "total pages rounds up",
			filter: models.CourseFilter{Page: 2, Limit: 3},
			setupMocks: func(r *RepoMock) {
				r.On("ListCourses", mock.Anything, models.CourseFilter{Page: 2, Limit: 3}).
					Return(courses, 10, nil).Once()
			},
			want: &models.CoursePage{
				Courses:      courses,
				TotalCourses: 10,
				CurrentPage:  2,
				TotalPages:   4,
			},
		},
		{
			name:   "search filter passed through",
			filter: models.CourseFilter{Search: "go", SortBy: "title", Filter: "beginner", Page: 1, Limit: 5},
			setupMocks: func(r *RepoMock) {
				r.On("ListCourses", mock.Anything, models.CourseFilter{
					Search: "go", SortBy: "title", Filter: "beginner", Page: 1, Limit: 5,
				}).Return([]*models.Course{courses[0]}, 1, nil).Once()
			},
			want: &models.CoursePage{
				Courses:      []*models.Course{courses[0]},
				TotalCourses: 1,
				CurrentPage:  1,
				TotalPages:   1,
			},
		},
		{
			name:   "repo error",
			filter: models.CourseFilter{Page: 1, Limit: 10},
			setupMocks: func(r *RepoMock) {
				r.On("ListCourses", mock.Anything, mock.Anything).
					Return(nil, 0, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewCourseService(repo, cache, newNoopLogger())

			tt.setupMocks(repo)

			got, err := svc.List(context.Background(), tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCourseService_Get(t *testing.T) {
	course := &models.Course{ID: 1, Title: "Go Basics"}

	tests := []struct {
		name       string
		id         int
		cacheFound bool
		cacheErr   error
		repoCourse *models.Course
		repoErr    error
		wantErr    error
	}{
		{
			name:       "cache hit skips repo",
			id:         1,
			cacheFound: true,
		},
		{
			name:       "cache miss then repo success",
			id:         2,
			repoCourse: course,
		},
		{
			name:       "cache error falls through to repo",
			id:         3,
			cacheErr:   errors.New("redis down"),
			repoCourse: course,
		},
		{
			name:    "not found",
			id:      4,
			repoErr: repository.ErrNotFound,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewCourseService(repo, cache, newNoopLogger())

			cacheKey := fmt.Sprintf("course:%d", tt.id)

			cache.On("Get", cacheKey, mock.Anything).Return(tt.cacheFound, tt.cacheErr).Run(func(args mock.Arguments) {
				if tt.cacheFound {
					ptr := args.Get(1).(*models.Course)
					*ptr = *course
				}
			}).Once()

			if !tt.cacheFound {
				repo.On("ReadCourse", mock.Anything, tt.id).Return(tt.repoCourse, tt.repoErr).Once()
				if tt.repoCourse != nil {
					cache.On("Set", cacheKey, tt.repoCourse, time.Hour).Return(nil).Once()
				}
			}

			got, err := svc.Get(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, course.Title, got.Title)
			}

			cache.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestCourseService_Create(t *testing.T) {
	req := models.DummyCourse{
		Title:           "Go Basics",
		Description:     "Introduction to Go",
		CourseStartDate: "2026-09-01",
		CourseEndDate:   "2026-12-01",
		Category:        "programming",
		Level:           "Beginner",
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		req        models.DummyCourse
		wantID     int
		wantErr    bool
	}{
		{
			name: "success",
			setupMocks: func(r *RepoMock) {
				r.On("CreateCourse", mock.Anything, mock.MatchedBy(func(c models.Course) bool {
					start, _ := time.Parse("2006-01-02", req.CourseStartDate)
					return c.Title == req.Title &&
						c.Level == req.Level &&
						c.CourseStartDate.Equal(start)
				})).Return(11, nil).Once()
			},
			req:    req,
			wantID: 11,
		},
		{
			name:       "invalid start date",
			setupMocks: func(_ *RepoMock) {},
			req: models.DummyCourse{
				Title:           "Go Basics",
				Description:     "Introduction to Go",
				CourseStartDate: "not-a-date",
				CourseEndDate:   "2026-12-01",
				Category:        "programming",
				Level:           "Beginner",
			},
			wantErr: true,
		},
		{
			name:       "end date before start date",
			setupMocks: func(_ *RepoMock) {},
			req: models.DummyCourse{
				Title:           "Go Basics",
				Description:     "Introduction to Go",
				CourseStartDate: "2026-12-01",
				CourseEndDate:   "2026-09-01",
				Category:        "programming",
				Level:           "Beginner",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewCourseService(repo, cache, newNoopLogger())

			tt.setupMocks(repo)

			id, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCourseService_Update(t *testing.T) {
	req := models.DummyCourse{
		Title:           "Go Basics",
		Description:     "Updated description",
		CourseStartDate: "2026-09-01",
		CourseEndDate:   "2026-12-01",
		Category:        "programming",
		Level:           "Intermediate",
	}
	updated := &models.Course{ID: 1, Title: "Go Basics", Level: "Intermediate"}

	t.Run("success invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewCourseService(repo, cache, newNoopLogger())

		repo.On("UpdateCourse", mock.Anything, mock.Anything, 1).Return(updated, nil).Once()
		cache.On("Invalidate", "course:1").Return(nil).Once()

		got, err := svc.Update(context.Background(), req, 1)
		assert.NoError(t, err)
		assert.Equal(t, updated, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewCourseService(repo, cache, newNoopLogger())

		repo.On("UpdateCourse", mock.Anything, mock.Anything, 2).
			Return(nil, repository.ErrNotFound).Once()

		got, err := svc.Update(context.Background(), req, 2)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, got)

		repo.AssertExpectations(t)
	})
}

func TestCourseService_Delete(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		id         int
		wantErr    error
	}{
		{
			name: "success invalidates cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("RemoveCourse", mock.Anything, 1).Return(1, nil).Once()
				c.On("Invalidate", "course:1").Return(nil).Once()
			},
			id: 1,
		},
		{
			name: "not found",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("RemoveCourse", mock.Anything, 2).Return(0, nil).Once()
			},
			id:      2,
			wantErr: ErrNotFound,
		},
		{
			name: "cache invalidate error does not fail delete",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("RemoveCourse", mock.Anything, 3).Return(1, nil).Once()
				c.On("Invalidate", "course:3").Return(errors.New("redis down")).Once()
			},
			id: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewCourseService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			err := svc.Delete(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
