package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/storage"
)

var (
	// ErrAlreadyEnrolled indicates an enrollment already exists for the pair.
	ErrAlreadyEnrolled = errors.New("student already enrolled in course")
	// ErrEnrollmentNotFound indicates no enrollment exists for the pair.
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// EnrollmentService exposes enrollment domain use cases.
type EnrollmentService interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error)
	Enroll(ctx context.Context, payload dto.EnrollRequest) (models.Enrollment, error)
	UpdateProgress(ctx context.Context, payload dto.ProgressUpdateRequest) (models.Enrollment, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	users       repository.UserRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEnrollmentService builds a new enrollment service.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		users:       users,
		validator:   validate,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
		now:         time.Now,
	}
}

func (s *enrollmentService) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}

func (s *enrollmentService) ListByInstructor(ctx context.Context, instructorID string) ([]models.Enrollment, error) {
	return s.enrollments.ListByInstructor(ctx, instructorID)
}

func (s *enrollmentService) ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error) {
	return s.enrollments.ListByCourse(ctx, models.ParseID(courseID))
}

// Enroll creates the enrollment after checking that both sides of the pair
// exist and no enrollment is present yet. The lesson total is derived from the
// course syllabus at this moment and never recomputed.
func (s *enrollmentService) Enroll(ctx context.Context, payload dto.EnrollRequest) (models.Enrollment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Enrollment{}, err
	}

	courseID := models.ParseID(payload.CourseID)
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Enrollment{}, ErrCourseNotFound
		}
		return models.Enrollment{}, err
	}

	student, err := s.users.Get(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Enrollment{}, ErrUserNotFound
		}
		return models.Enrollment{}, err
	}

	if _, err := s.enrollments.Find(ctx, student.ID, courseID); err == nil {
		return models.Enrollment{}, ErrAlreadyEnrolled
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Enrollment{}, err
	}

	now := s.now()
	today := now.Format(models.DateLayout)
	enrollment := models.Enrollment{
		ID:               models.NewID(now),
		StudentID:        student.ID,
		StudentName:      student.Name,
		CourseID:         course.ID,
		CourseName:       course.Title,
		InstructorID:     course.InstructorID,
		EnrolledAt:       today,
		Progress:         0,
		Status:           models.EnrollmentStatusActive,
		CompletedLessons: 0,
		TotalLessons:     course.TotalLessons(),
		LastAccessed:     today,
	}

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return models.Enrollment{}, err
	}

	s.logger.Info().
		Str("student_id", student.ID).
		Str("course_id", course.ID.String()).
		Int("total_lessons", enrollment.TotalLessons).
		Msg("student enrolled")
	return enrollment, nil
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, payload dto.ProgressUpdateRequest) (models.Enrollment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Enrollment{}, err
	}

	today := s.now().Format(models.DateLayout)
	updated, err := s.enrollments.Update(ctx, payload.StudentID, models.ParseID(payload.CourseID), func(enrollment *models.Enrollment) error {
		enrollment.Progress = payload.Progress
		enrollment.CompletedLessons = payload.CompletedLessons
		enrollment.LastAccessed = today
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Enrollment{}, ErrEnrollmentNotFound
		}
		return models.Enrollment{}, err
	}
	return updated, nil
}
