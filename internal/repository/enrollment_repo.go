package repository

import (
	"context"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// EnrollmentRepository defines persistence operations for enrollments.
type EnrollmentRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID models.ID) ([]models.Enrollment, error)
	Find(ctx context.Context, studentID string, courseID models.ID) (models.Enrollment, error)
	Create(ctx context.Context, enrollment models.Enrollment) error
	Update(ctx context.Context, studentID string, courseID models.ID, apply func(*models.Enrollment) error) (models.Enrollment, error)
}

type enrollmentRepository struct {
	store *storage.Store
}

// NewEnrollmentRepository instantiates a blob-backed repository.
func NewEnrollmentRepository(store *storage.Store) EnrollmentRepository {
	return &enrollmentRepository{store: store}
}

func loadEnrollments(tx *storage.Txn) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := tx.Load(storage.KeyEnrollments, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) list(ctx context.Context, keep func(models.Enrollment) bool) ([]models.Enrollment, error) {
	var filtered []models.Enrollment
	err := r.store.View(ctx, func(tx *storage.Txn) error {
		enrollments, err := loadEnrollments(tx)
		if err != nil {
			return err
		}
		filtered = make([]models.Enrollment, 0, len(enrollments))
		for _, enrollment := range enrollments {
			if keep(enrollment) {
				filtered = append(filtered, enrollment)
			}
		}
		return nil
	})
	return filtered, err
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	return r.list(ctx, func(e models.Enrollment) bool { return e.StudentID == studentID })
}

func (r *enrollmentRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.Enrollment, error) {
	return r.list(ctx, func(e models.Enrollment) bool { return e.InstructorID == instructorID })
}

func (r *enrollmentRepository) ListByCourse(ctx context.Context, courseID models.ID) ([]models.Enrollment, error) {
	return r.list(ctx, func(e models.Enrollment) bool { return e.CourseID == courseID })
}

func (r *enrollmentRepository) Find(ctx context.Context, studentID string, courseID models.ID) (models.Enrollment, error) {
	matches, err := r.list(ctx, func(e models.Enrollment) bool {
		return e.StudentID == studentID && e.CourseID == courseID
	})
	if err != nil {
		return models.Enrollment{}, err
	}
	if len(matches) == 0 {
		return models.Enrollment{}, storage.ErrNotFound
	}
	return matches[0], nil
}

// Create appends the enrollment and the matching course roster entry in one
// transaction, so the two representations of the relationship cannot diverge
// mid-write. Duplicate-pair checks belong to the caller.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment models.Enrollment) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		enrollments, err := loadEnrollments(tx)
		if err != nil {
			return err
		}
		enrollments = append(enrollments, enrollment)
		if err := tx.Save(storage.KeyEnrollments, enrollments); err != nil {
			return err
		}

		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}
		for i := range courses {
			if courses[i].ID == enrollment.CourseID {
				courses[i].EnrolledStudents = append(courses[i].EnrolledStudents, enrollment.StudentID)
				return tx.Save(storage.KeyCourses, courses)
			}
		}
		return storage.ErrNotFound
	})
}

func (r *enrollmentRepository) Update(ctx context.Context, studentID string, courseID models.ID, apply func(*models.Enrollment) error) (models.Enrollment, error) {
	var updated models.Enrollment
	err := r.store.Update(ctx, func(tx *storage.Txn) error {
		enrollments, err := loadEnrollments(tx)
		if err != nil {
			return err
		}

		for i := range enrollments {
			if enrollments[i].StudentID != studentID || enrollments[i].CourseID != courseID {
				continue
			}
			if err := apply(&enrollments[i]); err != nil {
				return err
			}
			updated = enrollments[i]
			return tx.Save(storage.KeyEnrollments, enrollments)
		}
		return storage.ErrNotFound
	})
	return updated, err
}
