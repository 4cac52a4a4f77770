package models

// EnrollmentStatusActive is the only status currently issued; the field stays a
// plain string so future states deserialize untouched.
const EnrollmentStatusActive = "active"

// Enrollment joins one student to one course and tracks progress. At most one
// record exists per (studentId, courseId) pair. Student and course names are
// snapshots taken at enrollment time.
type Enrollment struct {
	ID               ID     `json:"id"`
	StudentID        string `json:"studentId"`
	StudentName      string `json:"studentName"`
	CourseID         ID     `json:"courseId"`
	CourseName       string `json:"courseName"`
	InstructorID     string `json:"instructorId"`
	EnrolledAt       string `json:"enrolledAt"`
	Progress         int    `json:"progress"`
	Status           string `json:"status"`
	CompletedLessons int    `json:"completedLessons"`
	TotalLessons     int    `json:"totalLessons"`
	LastAccessed     string `json:"lastAccessed"`
}

// IsComplete reports whether the student finished the course.
func (e Enrollment) IsComplete() bool { return e.Progress >= 100 }
