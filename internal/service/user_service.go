package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// ErrUserNotFound indicates the requested identity does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes identity use cases.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, idOrEmail string) (dto.UserResponse, error)
	Update(ctx context.Context, idOrEmail string, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	StudentsOfInstructor(ctx context.Context, instructorID string) ([]dto.InstructorStudent, error)
}

type userService struct {
	users       repository.UserRepository
	enrollments repository.EnrollmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewUserService builds a new user service.
func NewUserService(users repository.UserRepository, enrollments repository.EnrollmentRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:       users,
		enrollments: enrollments,
		validator:   validate,
		logger:      logger.With().Str("component", "user_service").Logger(),
		now:         time.Now,
	}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Get(ctx context.Context, idOrEmail string) (dto.UserResponse, error) {
	user, err := s.users.Get(ctx, idOrEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, idOrEmail string, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	updated, err := s.users.Update(ctx, idOrEmail, func(user *models.User) error {
		if payload.Name != nil {
			user.Name = *payload.Name
		}
		if payload.Bio != nil {
			user.Bio = *payload.Bio
		}
		if payload.ProfileImage != nil {
			user.ProfileImage = *payload.ProfileImage
		}
		if payload.Expertise != nil {
			user.Expertise = *payload.Expertise
		}
		if payload.Education != nil {
			user.Education = *payload.Education
		}
		if payload.Certifications != nil {
			user.Certifications = *payload.Certifications
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(updated), nil
}

// StudentsOfInstructor derives the distinct students across the instructor's
// enrollments and annotates each with enrollment count, average progress and
// the latest access date.
func (s *userService) StudentsOfInstructor(ctx context.Context, instructorID string) ([]dto.InstructorStudent, error) {
	enrollments, err := s.enrollments.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(enrollments))
	grouped := make(map[string][]models.Enrollment, len(enrollments))
	for _, enrollment := range enrollments {
		if _, seen := grouped[enrollment.StudentID]; !seen {
			order = append(order, enrollment.StudentID)
		}
		grouped[enrollment.StudentID] = append(grouped[enrollment.StudentID], enrollment)
	}

	students := make([]dto.InstructorStudent, 0, len(order))
	for _, studentID := range order {
		user, err := s.users.Get(ctx, studentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Enrollment referencing a deleted identity; skip rather than fail the roster.
				continue
			}
			return nil, err
		}

		own := grouped[studentID]
		progressSum := 0
		lastActivity := ""
		for _, enrollment := range own {
			progressSum += enrollment.Progress
			if enrollment.LastAccessed > lastActivity {
				lastActivity = enrollment.LastAccessed
			}
		}

		students = append(students, dto.InstructorStudent{
			UserResponse:    dto.NewUserResponse(user),
			EnrolledCourses: len(own),
			AverageProgress: int(math.Round(float64(progressSum) / float64(len(own)))),
			LastActivity:    lastActivity,
		})
	}
	return students, nil
}
