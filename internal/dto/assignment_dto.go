package dto

// AssignmentCreateRequest is the payload for creating an assignment. The
// course name is denormalized server-side from the referenced course.
type AssignmentCreateRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	CourseID     string `json:"courseId" validate:"required"`
	Type         string `json:"type" validate:"omitempty,oneof=assignment quiz project exam discussion"`
	DueDate      string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Points       int    `json:"points" validate:"gte=0"`
	Status       string `json:"status" validate:"omitempty,oneof=draft published"`
}

// SubmitRequest is a student's (re)submission for an assignment.
type SubmitRequest struct {
	StudentID     string `json:"studentId" validate:"required"`
	SubmissionURL string `json:"submissionUrl"`
}

// GradeRequest grades one student's submission.
type GradeRequest struct {
	Grade    int    `json:"grade" validate:"gte=0,lte=100"`
	Feedback string `json:"feedback"`
}
