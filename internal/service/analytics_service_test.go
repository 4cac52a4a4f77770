package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/lumenhq/lumen-api/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func TestInstructorAnalyticsAggregates(t *testing.T) {
	courses := &memoryCourseRepo{courses: []models.Course{
		{ID: "1", InstructorID: "teacher1@email.com", Status: models.CourseStatusPublished, Price: 99, EnrolledStudents: []string{"student1@email.com", "student2@email.com"}},
		{ID: "2", InstructorID: "teacher1@email.com", Status: models.CourseStatusDraft, Price: 149},
	}}
	enrollments := &memoryEnrollmentRepo{enrollments: []models.Enrollment{
		{StudentID: "student1@email.com", CourseID: "1", InstructorID: "teacher1@email.com", Progress: 75, Status: models.EnrollmentStatusActive},
		{StudentID: "student1@email.com", CourseID: "2", InstructorID: "teacher1@email.com", Progress: 60, Status: models.EnrollmentStatusActive},
		{StudentID: "student2@email.com", CourseID: "1", InstructorID: "teacher1@email.com", Progress: 45, Status: models.EnrollmentStatusActive},
	}}
	assignRepo := &memoryAssignmentRepo{assignments: []models.Assignment{{
		ID: "1", CourseID: "1", InstructorID: "teacher1@email.com", Status: models.AssignmentStatusPublished,
		Submissions: []models.Submission{
			{StudentID: "student1@email.com", Status: models.SubmissionStatusGraded, Grade: intPtr(92)},
			{StudentID: "student2@email.com", Status: models.SubmissionStatusPending},
		},
	}}}

	svc := NewAnalyticsService(courses, enrollments, assignRepo, nil, nil, 0, testLogger())

	summary, err := svc.Instructor(context.Background(), "teacher1@email.com")
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalStudents)
	require.Equal(t, 3, summary.ActiveStudents)
	require.Equal(t, 2, summary.TotalCourses)
	require.Equal(t, 1, summary.PublishedCourses)
	require.Equal(t, 60, summary.AvgCompletionRate)
	require.Equal(t, 92, summary.AvgGrade)
	require.Equal(t, 1, summary.PendingGrades)
	require.Equal(t, 198.0, summary.TotalRevenue)
	require.False(t, summary.CacheHit)
}

func TestStudentAnalyticsAggregates(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{enrollments: []models.Enrollment{
		{StudentID: "student1@email.com", CourseID: "1", Progress: 100, Status: models.EnrollmentStatusActive},
		{StudentID: "student1@email.com", CourseID: "2", Progress: 50, Status: models.EnrollmentStatusActive},
	}}
	assignRepo := &memoryAssignmentRepo{assignments: []models.Assignment{
		{ID: "1", CourseID: "1", Status: models.AssignmentStatusPublished, Submissions: []models.Submission{
			{StudentID: "student1@email.com", Status: models.SubmissionStatusGraded, Grade: intPtr(80)},
		}},
		{ID: "2", CourseID: "2", Status: models.AssignmentStatusPublished, Submissions: []models.Submission{}},
	}}
	assignSvc := NewAssignmentService(assignRepo, enrollments, &memoryCourseRepo{}, &memoryUserRepo{}, validator.New(validator.WithRequiredStructEnabled()), nil, testLogger())

	svc := NewAnalyticsService(&memoryCourseRepo{}, enrollments, assignRepo, assignSvc, nil, 0, testLogger())

	summary, err := svc.Student(context.Background(), "student1@email.com")
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalCourses)
	require.Equal(t, 2, summary.ActiveCourses)
	require.Equal(t, 1, summary.CompletedCourses)
	require.Equal(t, 75, summary.AvgProgress)
	require.Equal(t, 2, summary.TotalAssignments)
	require.Equal(t, 1, summary.SubmittedAssignments)
	require.Equal(t, 1, summary.PendingSubmissions)
	require.Equal(t, 80, summary.AvgGrade)
}

func TestAnalyticsServiceCaching(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	courses := &memoryCourseRepo{courses: []models.Course{
		{ID: "1", InstructorID: "teacher1@email.com", Status: models.CourseStatusPublished},
	}}
	enrollments := &memoryEnrollmentRepo{enrollments: []models.Enrollment{
		{StudentID: "student1@email.com", CourseID: "1", InstructorID: "teacher1@email.com", Progress: 40, Status: models.EnrollmentStatusActive},
	}}
	assignRepo := &memoryAssignmentRepo{}

	svc := NewAnalyticsService(courses, enrollments, assignRepo, nil, client, time.Minute, testLogger())

	summary, err := svc.Instructor(context.Background(), "teacher1@email.com")
	require.NoError(t, err)
	require.False(t, summary.CacheHit)
	require.Equal(t, 1, summary.TotalStudents)

	// Underlying data changes, but the cached snapshot answers.
	enrollments.enrollments = append(enrollments.enrollments, models.Enrollment{
		StudentID: "student2@email.com", CourseID: "1", InstructorID: "teacher1@email.com", Status: models.EnrollmentStatusActive,
	})
	cached, err := svc.Instructor(context.Background(), "teacher1@email.com")
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.Equal(t, summary.TotalStudents, cached.TotalStudents)

	server.FastForward(2 * time.Minute)
	fresh, err := svc.Instructor(context.Background(), "teacher1@email.com")
	require.NoError(t, err)
	require.False(t, fresh.CacheHit)
	require.Equal(t, 2, fresh.TotalStudents)
}
