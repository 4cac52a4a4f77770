package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/storage"
)

func setupTestStore(t *testing.T) *storage.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	store, err := storage.Open(db, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestCourseRepositoryCreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	repo := NewCourseRepository(store)
	ctx := context.Background()

	course := models.Course{ID: "1700000000000", Title: "Go Basics", InstructorID: "teacher1@email.com"}
	require.NoError(t, repo.Create(ctx, course))

	got, err := repo.Get(ctx, "1700000000000")
	require.NoError(t, err)
	require.Equal(t, "Go Basics", got.Title)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCourseRepositoryGetMatchesLegacyNumericIDs(t *testing.T) {
	store := setupTestStore(t)
	repo := NewCourseRepository(store)
	ctx := context.Background()

	// Legacy blobs carry numeric ids; they must resolve via their string form.
	raw := []map[string]any{{"id": 1, "title": "Introduction to Web Development"}}
	require.NoError(t, store.Update(ctx, func(tx *storage.Txn) error {
		return tx.Save(storage.KeyCourses, raw)
	}))

	got, err := repo.Get(ctx, models.ParseID("1"))
	require.NoError(t, err)
	require.Equal(t, "Introduction to Web Development", got.Title)
}

func TestCourseRepositoryListByInstructor(t *testing.T) {
	store := setupTestStore(t)
	repo := NewCourseRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Course{ID: "1", InstructorID: "teacher1@email.com"}))
	require.NoError(t, repo.Create(ctx, models.Course{ID: "2", InstructorID: "teacher2@email.com"}))

	courses, err := repo.ListByInstructor(ctx, "teacher1@email.com")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, models.ID("1"), courses[0].ID)
}

func TestCourseRepositoryUpdateMergesInPlace(t *testing.T) {
	store := setupTestStore(t)
	repo := NewCourseRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Course{ID: "1", Status: models.CourseStatusDraft}))

	updated, err := repo.Update(ctx, "1", func(c *models.Course) error {
		c.Status = models.CourseStatusPublished
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, models.CourseStatusPublished, updated.Status)

	_, err = repo.Update(ctx, "missing", func(c *models.Course) error { return nil })
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCourseRepositoryDeleteCascades(t *testing.T) {
	store := setupTestStore(t)
	courses := NewCourseRepository(store)
	enrollments := NewEnrollmentRepository(store)
	assignments := NewAssignmentRepository(store)
	ctx := context.Background()

	require.NoError(t, courses.Create(ctx, models.Course{ID: "1"}))
	require.NoError(t, courses.Create(ctx, models.Course{ID: "2"}))
	require.NoError(t, enrollments.Create(ctx, models.Enrollment{ID: "10", StudentID: "a@x.com", CourseID: "1"}))
	require.NoError(t, enrollments.Create(ctx, models.Enrollment{ID: "11", StudentID: "a@x.com", CourseID: "2"}))
	require.NoError(t, assignments.Create(ctx, models.Assignment{ID: "20", CourseID: "1"}))
	require.NoError(t, assignments.Create(ctx, models.Assignment{ID: "21", CourseID: "2"}))

	require.NoError(t, courses.Delete(ctx, "1"))

	_, err := courses.Get(ctx, "1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	remaining, err := enrollments.ListByCourse(ctx, "1")
	require.NoError(t, err)
	require.Empty(t, remaining)

	untouched, err := enrollments.ListByCourse(ctx, "2")
	require.NoError(t, err)
	require.Len(t, untouched, 1)

	courseAssignments, err := assignments.ListByCourse(ctx, "1")
	require.NoError(t, err)
	require.Empty(t, courseAssignments)

	otherAssignments, err := assignments.ListByCourse(ctx, "2")
	require.NoError(t, err)
	require.Len(t, otherAssignments, 1)
}

func TestCourseRepositoryDeleteMissing(t *testing.T) {
	store := setupTestStore(t)
	repo := NewCourseRepository(store)

	err := repo.Delete(context.Background(), "nope")
	require.True(t, errors.Is(err, storage.ErrNotFound))
}
