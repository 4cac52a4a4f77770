package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// ErrCourseNotFound indicates the requested course does not exist.
var ErrCourseNotFound = errors.New("course not found")

// CourseService exposes course domain use cases.
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	Get(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, payload dto.CourseCreateRequest, instructorID, instructorName string) (models.Course, error)
	Update(ctx context.Context, id string, payload dto.CourseUpdateRequest) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo      repository.CourseRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCourseService builds a new course service.
func NewCourseService(repo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "course_service").Logger(),
		now:       time.Now,
	}
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	return s.repo.List(ctx)
}

func (s *courseService) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	return s.repo.ListByInstructor(ctx, instructorID)
}

func (s *courseService) Get(ctx context.Context, id string) (models.Course, error) {
	course, err := s.repo.Get(ctx, models.ParseID(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}
	return course, nil
}

func (s *courseService) Create(ctx context.Context, payload dto.CourseCreateRequest, instructorID, instructorName string) (models.Course, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Course{}, err
	}

	now := s.now()
	course := models.Course{
		ID:               models.NewID(now),
		Title:            payload.Title,
		Description:      s.sanitizer.Sanitize(payload.Description),
		Category:         payload.Category,
		Level:            models.CourseLevel(payload.Level),
		Duration:         payload.Duration,
		Price:            payload.Price,
		Image:            payload.Image,
		InstructorID:     instructorID,
		InstructorName:   instructorName,
		CreatedAt:        now.Format(models.DateLayout),
		Status:           models.CourseStatusDraft,
		Objectives:       payload.Objectives,
		Requirements:     payload.Requirements,
		Syllabus:         dto.SyllabusModules(payload.Syllabus),
		EnrolledStudents: []string{},
		Rating:           0,
		Reviews:          []models.Review{},
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return models.Course{}, err
	}

	s.logger.Info().Str("course_id", course.ID.String()).Str("instructor_id", instructorID).Msg("course created")
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id string, payload dto.CourseUpdateRequest) (models.Course, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Course{}, err
	}

	updated, err := s.repo.Update(ctx, models.ParseID(id), func(course *models.Course) error {
		if payload.Title != nil {
			course.Title = *payload.Title
		}
		if payload.Description != nil {
			course.Description = s.sanitizer.Sanitize(*payload.Description)
		}
		if payload.Category != nil {
			course.Category = *payload.Category
		}
		if payload.Level != nil {
			course.Level = models.CourseLevel(*payload.Level)
		}
		if payload.Duration != nil {
			course.Duration = *payload.Duration
		}
		if payload.Price != nil {
			course.Price = *payload.Price
		}
		if payload.Image != nil {
			course.Image = *payload.Image
		}
		if payload.Status != nil {
			course.Status = models.CourseStatus(*payload.Status)
		}
		if payload.Objectives != nil {
			course.Objectives = *payload.Objectives
		}
		if payload.Requirements != nil {
			course.Requirements = *payload.Requirements
		}
		if payload.Syllabus != nil {
			course.Syllabus = dto.SyllabusModules(*payload.Syllabus)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}
	return updated, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, models.ParseID(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	s.logger.Info().Str("course_id", id).Msg("course deleted with enrollments and assignments")
	return nil
}
