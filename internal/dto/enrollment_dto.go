package dto

// EnrollRequest asks to enroll a student into a course.
type EnrollRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
}

// ProgressUpdateRequest overwrites an enrollment's progress counters.
type ProgressUpdateRequest struct {
	StudentID        string `json:"studentId" validate:"required"`
	CourseID         string `json:"courseId" validate:"required"`
	Progress         int    `json:"progress" validate:"gte=0,lte=100"`
	CompletedLessons int    `json:"completedLessons" validate:"gte=0"`
}
