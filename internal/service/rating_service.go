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

// ErrReviewNotFound indicates the student has not reviewed the course.
var ErrReviewNotFound = errors.New("review not found")

// RatingService exposes course review use cases. The course's cached aggregate
// rating is recomputed inside the same write that touches the review list.
type RatingService interface {
	AddOrUpdate(ctx context.Context, courseID string, payload dto.RatingRequest) (models.Course, error)
	Reviews(ctx context.Context, courseID string) ([]models.Review, error)
	UserRating(ctx context.Context, courseID, studentID string) (models.Review, error)
	Stats(ctx context.Context, courseID string) (dto.RatingStatsResponse, error)
}

type ratingService struct {
	courses   repository.CourseRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRatingService builds a new rating service.
func NewRatingService(courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) RatingService {
	return &ratingService{
		courses:   courses,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "rating_service").Logger(),
		now:       time.Now,
	}
}

func (s *ratingService) AddOrUpdate(ctx context.Context, courseID string, payload dto.RatingRequest) (models.Course, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Course{}, err
	}

	review := models.Review{
		StudentID:   payload.StudentID,
		StudentName: payload.StudentName,
		Rating:      payload.Rating,
		Comment:     s.sanitizer.Sanitize(payload.Comment),
		CreatedAt:   s.now(),
	}

	updated, err := s.courses.Update(ctx, models.ParseID(courseID), func(course *models.Course) error {
		replaced := false
		for i := range course.Reviews {
			if course.Reviews[i].StudentID == review.StudentID {
				course.Reviews[i] = review
				replaced = true
				break
			}
		}
		if !replaced {
			course.Reviews = append(course.Reviews, review)
		}
		course.RecomputeRating()
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}

	s.logger.Info().
		Str("course_id", courseID).
		Str("student_id", payload.StudentID).
		Int("rating", payload.Rating).
		Float64("course_rating", updated.Rating).
		Msg("course rating recorded")
	return updated, nil
}

// Reviews returns the review list, or an empty list when the course is
// unknown; callers render it either way.
func (s *ratingService) Reviews(ctx context.Context, courseID string) ([]models.Review, error) {
	course, err := s.courses.Get(ctx, models.ParseID(courseID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.Review{}, nil
		}
		return nil, err
	}
	if course.Reviews == nil {
		return []models.Review{}, nil
	}
	return course.Reviews, nil
}

func (s *ratingService) UserRating(ctx context.Context, courseID, studentID string) (models.Review, error) {
	reviews, err := s.Reviews(ctx, courseID)
	if err != nil {
		return models.Review{}, err
	}
	for _, review := range reviews {
		if review.StudentID == studentID {
			return review, nil
		}
	}
	return models.Review{}, ErrReviewNotFound
}

func (s *ratingService) Stats(ctx context.Context, courseID string) (dto.RatingStatsResponse, error) {
	reviews, err := s.Reviews(ctx, courseID)
	if err != nil {
		return dto.RatingStatsResponse{}, err
	}

	stats := dto.RatingStatsResponse{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats, nil
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
		stats.RatingDistribution[review.Rating]++
	}
	stats.TotalReviews = len(reviews)
	stats.AverageRating = models.RoundRating(float64(sum) / float64(len(reviews)))
	return stats, nil
}
