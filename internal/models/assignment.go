package models

import "time"

// AssignmentType enumerates gradable task kinds.
type AssignmentType string

const (
	AssignmentTypeAssignment AssignmentType = "assignment"
	AssignmentTypeQuiz       AssignmentType = "quiz"
	AssignmentTypeProject    AssignmentType = "project"
	AssignmentTypeExam       AssignmentType = "exam"
	AssignmentTypeDiscussion AssignmentType = "discussion"
)

// Assignment status values. Only published assignments are visible to enrolled
// students.
const (
	AssignmentStatusDraft     = "draft"
	AssignmentStatusPublished = "published"
)

// Submission status values.
const (
	SubmissionStatusPending = "pending"
	SubmissionStatusGraded  = "graded"
)

// GradeRecord is an archived grade, kept when a graded submission is replaced
// by a resubmission.
type GradeRecord struct {
	Grade    int       `json:"grade"`
	Feedback string    `json:"feedback"`
	GradedAt time.Time `json:"gradedAt"`
}

// Submission is one student's response to an assignment. At most one lives per
// (assignment, student); resubmission overwrites in place, archiving any prior
// grade into PreviousGrades.
type Submission struct {
	StudentID      string        `json:"studentId"`
	StudentName    string        `json:"studentName"`
	SubmittedAt    string        `json:"submittedAt"`
	Status         string        `json:"status"`
	Grade          *int          `json:"grade"`
	Feedback       string        `json:"feedback"`
	SubmissionURL  string        `json:"submissionUrl"`
	PreviousGrades []GradeRecord `json:"previousGrades,omitempty"`
}

// IsGraded reports whether the submission carries a final grade.
func (s Submission) IsGraded() bool { return s.Status == SubmissionStatusGraded }

// Assignment is a gradable task scoped to one course. CourseName is a snapshot
// taken at creation time.
type Assignment struct {
	ID           ID             `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Instructions string         `json:"instructions"`
	CourseID     ID             `json:"courseId"`
	CourseName   string         `json:"courseName"`
	InstructorID string         `json:"instructorId"`
	Type         AssignmentType `json:"type"`
	DueDate      string         `json:"dueDate"`
	Points       int            `json:"points"`
	Status       string         `json:"status"`
	CreatedAt    string         `json:"createdAt"`
	Submissions  []Submission   `json:"submissions"`
}

// SubmissionIndex returns the position of the given student's submission, or
// -1 when the student has not submitted.
func (a Assignment) SubmissionIndex(studentID string) int {
	for i, submission := range a.Submissions {
		if submission.StudentID == studentID {
			return i
		}
	}
	return -1
}
