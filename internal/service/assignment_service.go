package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/storage"
)

var (
	// ErrAssignmentNotFound indicates the requested assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrSubmissionNotFound indicates the student has not submitted.
	ErrSubmissionNotFound = errors.New("submission not found")
)

// AssignmentService exposes assignment and submission use cases.
type AssignmentService interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Assignment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.Assignment, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest, instructorID string) (models.Assignment, error)
	Submit(ctx context.Context, assignmentID string, payload dto.SubmitRequest) (models.Submission, error)
	Grade(ctx context.Context, assignmentID, studentID string, payload dto.GradeRequest) (models.Submission, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	users       repository.UserRepository
	validator   *validator.Validate
	notifier    Notifier
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds a new assignment service. A nil notifier
// disables event publication.
func NewAssignmentService(assignments repository.AssignmentRepository, enrollments repository.EnrollmentRepository, courses repository.CourseRepository, users repository.UserRepository, validate *validator.Validate, notifier Notifier, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		enrollments: enrollments,
		courses:     courses,
		users:       users,
		validator:   validate,
		notifier:    notifier,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) ListByInstructor(ctx context.Context, instructorID string) ([]models.Assignment, error) {
	return s.assignments.ListByInstructor(ctx, instructorID)
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	return s.assignments.ListByCourse(ctx, models.ParseID(courseID))
}

// ListForStudent intersects the student's enrolled courses with all
// assignments, keeping only published ones.
func (s *assignmentService) ListForStudent(ctx context.Context, studentID string) ([]models.Assignment, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	enrolled := make(map[models.ID]struct{}, len(enrollments))
	for _, enrollment := range enrollments {
		enrolled[enrollment.CourseID] = struct{}{}
	}

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.Status != models.AssignmentStatusPublished {
			continue
		}
		if _, ok := enrolled[assignment.CourseID]; ok {
			visible = append(visible, assignment)
		}
	}
	return visible, nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest, instructorID string) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	course, err := s.courses.Get(ctx, models.ParseID(payload.CourseID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Assignment{}, ErrCourseNotFound
		}
		return models.Assignment{}, err
	}

	status := payload.Status
	if status == "" {
		status = models.AssignmentStatusDraft
	}
	kind := models.AssignmentType(payload.Type)
	if kind == "" {
		kind = models.AssignmentTypeAssignment
	}

	now := s.now()
	assignment := models.Assignment{
		ID:           models.NewID(now),
		Title:        payload.Title,
		Description:  payload.Description,
		Instructions: payload.Instructions,
		CourseID:     course.ID,
		CourseName:   course.Title,
		InstructorID: instructorID,
		Type:         kind,
		DueDate:      payload.DueDate,
		Points:       payload.Points,
		Status:       status,
		CreatedAt:    now.Format(models.DateLayout),
		Submissions:  []models.Submission{},
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return models.Assignment{}, err
	}

	s.logger.Info().Str("assignment_id", assignment.ID.String()).Str("course_id", course.ID.String()).Msg("assignment created")
	return assignment, nil
}

// Submit upserts the student's submission. A resubmission over a graded
// submission archives the prior grade and feedback into the submission's
// history and resets it to pending for re-grading.
func (s *assignmentService) Submit(ctx context.Context, assignmentID string, payload dto.SubmitRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	student, err := s.users.Get(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Submission{}, ErrUserNotFound
		}
		return models.Submission{}, err
	}

	now := s.now()
	var saved models.Submission
	updated, err := s.assignments.Update(ctx, models.ParseID(assignmentID), func(assignment *models.Assignment) error {
		submission := models.Submission{
			StudentID:     student.ID,
			StudentName:   student.Name,
			SubmittedAt:   now.Format(models.DateLayout),
			Status:        models.SubmissionStatusPending,
			Grade:         nil,
			Feedback:      "",
			SubmissionURL: payload.SubmissionURL,
		}

		if i := assignment.SubmissionIndex(student.ID); i >= 0 {
			previous := assignment.Submissions[i]
			submission.PreviousGrades = previous.PreviousGrades
			if previous.IsGraded() && previous.Grade != nil {
				submission.PreviousGrades = append(submission.PreviousGrades, models.GradeRecord{
					Grade:    *previous.Grade,
					Feedback: previous.Feedback,
					GradedAt: now,
				})
			}
			assignment.Submissions[i] = submission
		} else {
			assignment.Submissions = append(assignment.Submissions, submission)
		}

		saved = submission
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Submission{}, ErrAssignmentNotFound
		}
		return models.Submission{}, err
	}

	if s.notifier != nil {
		s.notifier.SubmissionReceived(updated, saved)
	}
	return saved, nil
}

func (s *assignmentService) Grade(ctx context.Context, assignmentID, studentID string, payload dto.GradeRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	var graded models.Submission
	updated, err := s.assignments.Update(ctx, models.ParseID(assignmentID), func(assignment *models.Assignment) error {
		i := assignment.SubmissionIndex(studentID)
		if i < 0 {
			return ErrSubmissionNotFound
		}

		grade := payload.Grade
		assignment.Submissions[i].Grade = &grade
		assignment.Submissions[i].Feedback = payload.Feedback
		assignment.Submissions[i].Status = models.SubmissionStatusGraded
		graded = assignment.Submissions[i]
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Submission{}, ErrAssignmentNotFound
		}
		return models.Submission{}, err
	}

	if s.notifier != nil {
		s.notifier.SubmissionGraded(updated, graded)
	}

	s.logger.Info().
		Str("assignment_id", assignmentID).
		Str("student_id", studentID).
		Int("grade", payload.Grade).
		Msg("submission graded")
	return graded, nil
}
