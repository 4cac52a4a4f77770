package repository

import (
	"context"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	Get(ctx context.Context, id models.ID) (models.Course, error)
	Create(ctx context.Context, course models.Course) error
	Update(ctx context.Context, id models.ID, apply func(*models.Course) error) (models.Course, error)
	Delete(ctx context.Context, id models.ID) error
}

type courseRepository struct {
	store *storage.Store
}

// NewCourseRepository instantiates a blob-backed repository.
func NewCourseRepository(store *storage.Store) CourseRepository {
	return &courseRepository{store: store}
}

func loadCourses(tx *storage.Txn) ([]models.Course, error) {
	var courses []models.Course
	if err := tx.Load(storage.KeyCourses, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.store.View(ctx, func(tx *storage.Txn) error {
		var loadErr error
		courses, loadErr = loadCourses(tx)
		return loadErr
	})
	return courses, err
}

func (r *courseRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if course.InstructorID == instructorID {
			filtered = append(filtered, course)
		}
	}
	return filtered, nil
}

func (r *courseRepository) Get(ctx context.Context, id models.ID) (models.Course, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return models.Course{}, err
	}

	for _, course := range courses {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, storage.ErrNotFound
}

func (r *courseRepository) Create(ctx context.Context, course models.Course) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}
		courses = append(courses, course)
		return tx.Save(storage.KeyCourses, courses)
	})
}

func (r *courseRepository) Update(ctx context.Context, id models.ID, apply func(*models.Course) error) (models.Course, error) {
	var updated models.Course
	err := r.store.Update(ctx, func(tx *storage.Txn) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}

		for i := range courses {
			if courses[i].ID != id {
				continue
			}
			if err := apply(&courses[i]); err != nil {
				return err
			}
			updated = courses[i]
			return tx.Save(storage.KeyCourses, courses)
		}
		return storage.ErrNotFound
	})
	return updated, err
}

// Delete removes the course and cascades to every enrollment and assignment
// referencing it, all inside one transaction.
func (r *courseRepository) Delete(ctx context.Context, id models.ID) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		courses, err := loadCourses(tx)
		if err != nil {
			return err
		}

		kept := make([]models.Course, 0, len(courses))
		found := false
		for _, course := range courses {
			if course.ID == id {
				found = true
				continue
			}
			kept = append(kept, course)
		}
		if !found {
			return storage.ErrNotFound
		}
		if err := tx.Save(storage.KeyCourses, kept); err != nil {
			return err
		}

		var enrollments []models.Enrollment
		if err := tx.Load(storage.KeyEnrollments, &enrollments); err != nil {
			return err
		}
		keptEnrollments := make([]models.Enrollment, 0, len(enrollments))
		for _, enrollment := range enrollments {
			if enrollment.CourseID != id {
				keptEnrollments = append(keptEnrollments, enrollment)
			}
		}
		if err := tx.Save(storage.KeyEnrollments, keptEnrollments); err != nil {
			return err
		}

		var assignments []models.Assignment
		if err := tx.Load(storage.KeyAssignments, &assignments); err != nil {
			return err
		}
		keptAssignments := make([]models.Assignment, 0, len(assignments))
		for _, assignment := range assignments {
			if assignment.CourseID != id {
				keptAssignments = append(keptAssignments, assignment)
			}
		}
		return tx.Save(storage.KeyAssignments, keptAssignments)
	})
}
