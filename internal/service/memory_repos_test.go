package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/storage"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type memoryCourseRepo struct {
	courses []models.Course
}

func (m *memoryCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	return append([]models.Course(nil), m.courses...), nil
}

func (m *memoryCourseRepo) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	results := make([]models.Course, 0, len(m.courses))
	for _, course := range m.courses {
		if course.InstructorID == instructorID {
			results = append(results, course)
		}
	}
	return results, nil
}

func (m *memoryCourseRepo) Get(ctx context.Context, id models.ID) (models.Course, error) {
	for _, course := range m.courses {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, storage.ErrNotFound
}

func (m *memoryCourseRepo) Create(ctx context.Context, course models.Course) error {
	m.courses = append(m.courses, course)
	return nil
}

func (m *memoryCourseRepo) Update(ctx context.Context, id models.ID, apply func(*models.Course) error) (models.Course, error) {
	for i := range m.courses {
		if m.courses[i].ID == id {
			if err := apply(&m.courses[i]); err != nil {
				return models.Course{}, err
			}
			return m.courses[i], nil
		}
	}
	return models.Course{}, storage.ErrNotFound
}

func (m *memoryCourseRepo) Delete(ctx context.Context, id models.ID) error {
	for i := range m.courses {
		if m.courses[i].ID == id {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

type memoryEnrollmentRepo struct {
	enrollments []models.Enrollment
}

func (m *memoryEnrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	results := make([]models.Enrollment, 0, len(m.enrollments))
	for _, enrollment := range m.enrollments {
		if enrollment.StudentID == studentID {
			results = append(results, enrollment)
		}
	}
	return results, nil
}

func (m *memoryEnrollmentRepo) ListByInstructor(ctx context.Context, instructorID string) ([]models.Enrollment, error) {
	results := make([]models.Enrollment, 0, len(m.enrollments))
	for _, enrollment := range m.enrollments {
		if enrollment.InstructorID == instructorID {
			results = append(results, enrollment)
		}
	}
	return results, nil
}

func (m *memoryEnrollmentRepo) ListByCourse(ctx context.Context, courseID models.ID) ([]models.Enrollment, error) {
	results := make([]models.Enrollment, 0, len(m.enrollments))
	for _, enrollment := range m.enrollments {
		if enrollment.CourseID == courseID {
			results = append(results, enrollment)
		}
	}
	return results, nil
}

func (m *memoryEnrollmentRepo) Find(ctx context.Context, studentID string, courseID models.ID) (models.Enrollment, error) {
	for _, enrollment := range m.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			return enrollment, nil
		}
	}
	return models.Enrollment{}, storage.ErrNotFound
}

func (m *memoryEnrollmentRepo) Create(ctx context.Context, enrollment models.Enrollment) error {
	m.enrollments = append(m.enrollments, enrollment)
	return nil
}

func (m *memoryEnrollmentRepo) Update(ctx context.Context, studentID string, courseID models.ID, apply func(*models.Enrollment) error) (models.Enrollment, error) {
	for i := range m.enrollments {
		if m.enrollments[i].StudentID == studentID && m.enrollments[i].CourseID == courseID {
			if err := apply(&m.enrollments[i]); err != nil {
				return models.Enrollment{}, err
			}
			return m.enrollments[i], nil
		}
	}
	return models.Enrollment{}, storage.ErrNotFound
}

type memoryAssignmentRepo struct {
	assignments []models.Assignment
}

func (m *memoryAssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	return append([]models.Assignment(nil), m.assignments...), nil
}

func (m *memoryAssignmentRepo) ListByInstructor(ctx context.Context, instructorID string) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0, len(m.assignments))
	for _, assignment := range m.assignments {
		if assignment.InstructorID == instructorID {
			results = append(results, assignment)
		}
	}
	return results, nil
}

func (m *memoryAssignmentRepo) ListByCourse(ctx context.Context, courseID models.ID) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0, len(m.assignments))
	for _, assignment := range m.assignments {
		if assignment.CourseID == courseID {
			results = append(results, assignment)
		}
	}
	return results, nil
}

func (m *memoryAssignmentRepo) Get(ctx context.Context, id models.ID) (models.Assignment, error) {
	for _, assignment := range m.assignments {
		if assignment.ID == id {
			return assignment, nil
		}
	}
	return models.Assignment{}, storage.ErrNotFound
}

func (m *memoryAssignmentRepo) Create(ctx context.Context, assignment models.Assignment) error {
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *memoryAssignmentRepo) Update(ctx context.Context, id models.ID, apply func(*models.Assignment) error) (models.Assignment, error) {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			if err := apply(&m.assignments[i]); err != nil {
				return models.Assignment{}, err
			}
			return m.assignments[i], nil
		}
	}
	return models.Assignment{}, storage.ErrNotFound
}

type memoryUserRepo struct {
	users []models.User
}

func (m *memoryUserRepo) List(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), m.users...), nil
}

func (m *memoryUserRepo) Get(ctx context.Context, idOrEmail string) (models.User, error) {
	for _, user := range m.users {
		if user.Matches(idOrEmail) {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memoryUserRepo) Create(ctx context.Context, user models.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	m.users = append(m.users, user)
	return nil
}

func (m *memoryUserRepo) Update(ctx context.Context, idOrEmail string, apply func(*models.User) error) (models.User, error) {
	for i := range m.users {
		if m.users[i].Matches(idOrEmail) {
			if err := apply(&m.users[i]); err != nil {
				return models.User{}, err
			}
			return m.users[i], nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

type memorySessionRepo struct {
	current  models.User
	hasUser  bool
	searches []string
}

func (m *memorySessionRepo) CurrentUser(ctx context.Context) (models.User, error) {
	if !m.hasUser {
		return models.User{}, storage.ErrNotFound
	}
	return m.current, nil
}

func (m *memorySessionRepo) SetCurrentUser(ctx context.Context, user models.User) error {
	m.current = user
	m.hasUser = true
	return nil
}

func (m *memorySessionRepo) ClearCurrentUser(ctx context.Context) error {
	m.current = models.User{}
	m.hasUser = false
	return nil
}

func (m *memorySessionRepo) RecentSearches(ctx context.Context) ([]string, error) {
	return append([]string(nil), m.searches...), nil
}

func (m *memorySessionRepo) SaveRecentSearches(ctx context.Context, terms []string) error {
	m.searches = append([]string(nil), terms...)
	return nil
}

func (m *memorySessionRepo) ClearRecentSearches(ctx context.Context) error {
	m.searches = nil
	return nil
}
