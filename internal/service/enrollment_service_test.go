package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
)

func fixedClock(day string) func() time.Time {
	parsed, _ := time.Parse(models.DateLayout, day)
	return func() time.Time { return parsed }
}

func TestEnrollmentServiceEnroll(t *testing.T) {
	courses := &memoryCourseRepo{courses: []models.Course{{
		ID:           "10",
		Title:        "Go Fundamentals",
		InstructorID: "teacher1@email.com",
		Syllabus: []models.SyllabusModule{
			{Module: "Basics", Topics: []string{"Syntax", "Types", "Control Flow"}},
			{Module: "Concurrency", Topics: []string{"Goroutines", "Channels"}},
		},
	}}}
	users := &memoryUserRepo{users: []models.User{{
		ID: "student1@email.com", Name: "Alice Johnson", Email: "student1@email.com", Role: models.RoleStudent,
	}}}
	enrollments := &memoryEnrollmentRepo{}

	svc := NewEnrollmentService(enrollments, courses, users, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	svc.(*enrollmentService).now = fixedClock("2026-03-01")

	enrollment, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: "student1@email.com", CourseID: "10"})
	require.NoError(t, err)
	require.Equal(t, "student1@email.com", enrollment.StudentID)
	require.Equal(t, "Alice Johnson", enrollment.StudentName)
	require.Equal(t, "Go Fundamentals", enrollment.CourseName)
	require.Equal(t, "teacher1@email.com", enrollment.InstructorID)
	require.Equal(t, 5, enrollment.TotalLessons)
	require.Equal(t, 0, enrollment.Progress)
	require.Equal(t, models.EnrollmentStatusActive, enrollment.Status)
	require.Equal(t, "2026-03-01", enrollment.EnrolledAt)
	require.Equal(t, "2026-03-01", enrollment.LastAccessed)

	_, err = svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: "student1@email.com", CourseID: "10"})
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollmentServiceEnrollUnknownPair(t *testing.T) {
	courses := &memoryCourseRepo{courses: []models.Course{{ID: "10", Title: "Go Fundamentals"}}}
	users := &memoryUserRepo{users: []models.User{{ID: "student1@email.com", Email: "student1@email.com"}}}
	svc := NewEnrollmentService(&memoryEnrollmentRepo{}, courses, users, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: "student1@email.com", CourseID: "99"})
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: "ghost@email.com", CourseID: "10"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnrollmentServiceEnrollDefaultLessonCount(t *testing.T) {
	courses := &memoryCourseRepo{courses: []models.Course{{ID: "10", Title: "No Syllabus Yet"}}}
	users := &memoryUserRepo{users: []models.User{{ID: "student1@email.com", Email: "student1@email.com"}}}
	svc := NewEnrollmentService(&memoryEnrollmentRepo{}, courses, users, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	enrollment, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: "student1@email.com", CourseID: "10"})
	require.NoError(t, err)
	require.Equal(t, 10, enrollment.TotalLessons)
}

func TestEnrollmentServiceUpdateProgress(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{enrollments: []models.Enrollment{{
		ID:           "100",
		StudentID:    "student1@email.com",
		CourseID:     "10",
		Progress:     45,
		Status:       models.EnrollmentStatusActive,
		TotalLessons: 20, CompletedLessons: 9,
		LastAccessed: "2026-02-20",
	}}}
	svc := NewEnrollmentService(enrollments, &memoryCourseRepo{}, &memoryUserRepo{}, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	svc.(*enrollmentService).now = fixedClock("2026-03-05")

	updated, err := svc.UpdateProgress(context.Background(), dto.ProgressUpdateRequest{
		StudentID: "student1@email.com", CourseID: "10", Progress: 75, CompletedLessons: 15,
	})
	require.NoError(t, err)
	require.Equal(t, 75, updated.Progress)
	require.Equal(t, 15, updated.CompletedLessons)
	require.Equal(t, 20, updated.TotalLessons)
	require.Equal(t, "2026-03-05", updated.LastAccessed)

	_, err = svc.UpdateProgress(context.Background(), dto.ProgressUpdateRequest{
		StudentID: "student1@email.com", CourseID: "99", Progress: 10,
	})
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestEnrollmentServiceUpdateProgressRejectsOutOfRange(t *testing.T) {
	svc := NewEnrollmentService(&memoryEnrollmentRepo{}, &memoryCourseRepo{}, &memoryUserRepo{}, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.UpdateProgress(context.Background(), dto.ProgressUpdateRequest{
		StudentID: "student1@email.com", CourseID: "10", Progress: 120,
	})
	require.Error(t, err)
}
