package repository

import (
	"context"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// AssignmentRepository defines persistence operations for assignments and
// their embedded submissions.
type AssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Assignment, error)
	ListByCourse(ctx context.Context, courseID models.ID) ([]models.Assignment, error)
	Get(ctx context.Context, id models.ID) (models.Assignment, error)
	Create(ctx context.Context, assignment models.Assignment) error
	Update(ctx context.Context, id models.ID, apply func(*models.Assignment) error) (models.Assignment, error)
}

type assignmentRepository struct {
	store *storage.Store
}

// NewAssignmentRepository instantiates a blob-backed repository.
func NewAssignmentRepository(store *storage.Store) AssignmentRepository {
	return &assignmentRepository{store: store}
}

func loadAssignments(tx *storage.Txn) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := tx.Load(storage.KeyAssignments, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.store.View(ctx, func(tx *storage.Txn) error {
		var loadErr error
		assignments, loadErr = loadAssignments(tx)
		return loadErr
	})
	return assignments, err
}

func (r *assignmentRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.Assignment, error) {
	assignments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.InstructorID == instructorID {
			filtered = append(filtered, assignment)
		}
	}
	return filtered, nil
}

func (r *assignmentRepository) ListByCourse(ctx context.Context, courseID models.ID) ([]models.Assignment, error) {
	assignments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.CourseID == courseID {
			filtered = append(filtered, assignment)
		}
	}
	return filtered, nil
}

func (r *assignmentRepository) Get(ctx context.Context, id models.ID) (models.Assignment, error) {
	assignments, err := r.List(ctx)
	if err != nil {
		return models.Assignment{}, err
	}

	for _, assignment := range assignments {
		if assignment.ID == id {
			return assignment, nil
		}
	}
	return models.Assignment{}, storage.ErrNotFound
}

func (r *assignmentRepository) Create(ctx context.Context, assignment models.Assignment) error {
	return r.store.Update(ctx, func(tx *storage.Txn) error {
		assignments, err := loadAssignments(tx)
		if err != nil {
			return err
		}
		assignments = append(assignments, assignment)
		return tx.Save(storage.KeyAssignments, assignments)
	})
}

func (r *assignmentRepository) Update(ctx context.Context, id models.ID, apply func(*models.Assignment) error) (models.Assignment, error) {
	var updated models.Assignment
	err := r.store.Update(ctx, func(tx *storage.Txn) error {
		assignments, err := loadAssignments(tx)
		if err != nil {
			return err
		}

		for i := range assignments {
			if assignments[i].ID != id {
				continue
			}
			if err := apply(&assignments[i]); err != nil {
				return err
			}
			updated = assignments[i]
			return tx.Save(storage.KeyAssignments, assignments)
		}
		return storage.ErrNotFound
	})
	return updated, err
}
