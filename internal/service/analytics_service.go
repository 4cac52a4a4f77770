package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
)

// AnalyticsService computes derived per-identity aggregates. Nothing is
// persisted; results are cached in Redis with a TTL when a client is supplied.
type AnalyticsService interface {
	Instructor(ctx context.Context, instructorID string) (dto.InstructorAnalyticsResponse, error)
	Student(ctx context.Context, studentID string) (dto.StudentAnalyticsResponse, error)
}

type analyticsService struct {
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	assignments AssignmentService
	assignRepo  repository.AssignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewAnalyticsService builds the analytics aggregator. A nil cache disables
// caching.
func NewAnalyticsService(courses repository.CourseRepository, enrollments repository.EnrollmentRepository, assignRepo repository.AssignmentRepository, assignments AssignmentService, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		courses:     courses,
		enrollments: enrollments,
		assignments: assignments,
		assignRepo:  assignRepo,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "analytics_service").Logger(),
	}
}

const analyticsTracerName = "github.com/lumenhq/lumen-api/internal/service/analytics"

func (s *analyticsService) Instructor(ctx context.Context, instructorID string) (dto.InstructorAnalyticsResponse, error) {
	cacheKey := fmt.Sprintf("analytics:instructor:%s", instructorID)
	tracer := otel.Tracer(analyticsTracerName)
	ctx, span := tracer.Start(ctx, "analytics.instructor")
	span.SetAttributes(attribute.String("analytics.instructor_id", instructorID))
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.InstructorAnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		span.RecordError(err)
		return dto.InstructorAnalyticsResponse{}, err
	}
	enrollments, err := s.enrollments.ListByInstructor(ctx, instructorID)
	if err != nil {
		span.RecordError(err)
		return dto.InstructorAnalyticsResponse{}, err
	}
	assignments, err := s.assignRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		span.RecordError(err)
		return dto.InstructorAnalyticsResponse{}, err
	}

	response := buildInstructorAnalytics(courses, enrollments, assignments)
	span.SetAttributes(
		attribute.Int("analytics.course_count", len(courses)),
		attribute.Int("analytics.enrollment_count", len(enrollments)),
	)

	s.storeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *analyticsService) Student(ctx context.Context, studentID string) (dto.StudentAnalyticsResponse, error) {
	cacheKey := fmt.Sprintf("analytics:student:%s", studentID)
	tracer := otel.Tracer(analyticsTracerName)
	ctx, span := tracer.Start(ctx, "analytics.student")
	span.SetAttributes(attribute.String("analytics.student_id", studentID))
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentAnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return dto.StudentAnalyticsResponse{}, err
	}
	assignments, err := s.assignments.ListForStudent(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return dto.StudentAnalyticsResponse{}, err
	}

	response := buildStudentAnalytics(studentID, enrollments, assignments)
	s.storeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *analyticsService) storeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store analytics cache")
	}
}

func buildInstructorAnalytics(courses []models.Course, enrollments []models.Enrollment, assignments []models.Assignment) dto.InstructorAnalyticsResponse {
	distinct := map[string]struct{}{}
	active := 0
	progressSum := 0
	for _, enrollment := range enrollments {
		distinct[enrollment.StudentID] = struct{}{}
		if enrollment.Status == models.EnrollmentStatusActive {
			active++
		}
		progressSum += enrollment.Progress
	}

	published := 0
	revenue := 0.0
	for _, course := range courses {
		if course.Status == models.CourseStatusPublished {
			published++
		}
		revenue += course.Price * float64(len(course.EnrolledStudents))
	}

	gradeSum := 0
	gradedCount := 0
	pending := 0
	for _, assignment := range assignments {
		for _, submission := range assignment.Submissions {
			if submission.Grade != nil {
				gradeSum += *submission.Grade
				gradedCount++
			}
			if submission.Status == models.SubmissionStatusPending {
				pending++
			}
		}
	}

	response := dto.InstructorAnalyticsResponse{
		TotalStudents:    len(distinct),
		ActiveStudents:   active,
		TotalCourses:     len(courses),
		PublishedCourses: published,
		PendingGrades:    pending,
		TotalRevenue:     revenue,
	}
	if len(enrollments) > 0 {
		response.AvgCompletionRate = int(math.Round(float64(progressSum) / float64(len(enrollments))))
	}
	if gradedCount > 0 {
		response.AvgGrade = int(math.Round(float64(gradeSum) / float64(gradedCount)))
	}
	return response
}

func buildStudentAnalytics(studentID string, enrollments []models.Enrollment, assignments []models.Assignment) dto.StudentAnalyticsResponse {
	activeCourses := 0
	completed := 0
	progressSum := 0
	for _, enrollment := range enrollments {
		if enrollment.Status == models.EnrollmentStatusActive {
			activeCourses++
		}
		if enrollment.IsComplete() {
			completed++
		}
		progressSum += enrollment.Progress
	}

	submitted := 0
	gradeSum := 0
	gradedCount := 0
	for _, assignment := range assignments {
		if i := assignment.SubmissionIndex(studentID); i >= 0 {
			submitted++
			if grade := assignment.Submissions[i].Grade; grade != nil {
				gradeSum += *grade
				gradedCount++
			}
		}
	}

	response := dto.StudentAnalyticsResponse{
		TotalCourses:         len(enrollments),
		ActiveCourses:        activeCourses,
		CompletedCourses:     completed,
		TotalAssignments:     len(assignments),
		SubmittedAssignments: submitted,
		PendingSubmissions:   len(assignments) - submitted,
	}
	if len(enrollments) > 0 {
		response.AvgProgress = int(math.Round(float64(progressSum) / float64(len(enrollments))))
	}
	if gradedCount > 0 {
		response.AvgGrade = int(math.Round(float64(gradeSum) / float64(gradedCount)))
	}
	return response
}
