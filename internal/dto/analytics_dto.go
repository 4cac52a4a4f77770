package dto

// InstructorAnalyticsResponse summarizes one instructor's teaching activity.
// All averages are rounded to the nearest integer; zero when no inputs exist.
type InstructorAnalyticsResponse struct {
	TotalStudents     int     `json:"totalStudents"`
	ActiveStudents    int     `json:"activeStudents"`
	TotalCourses      int     `json:"totalCourses"`
	PublishedCourses  int     `json:"publishedCourses"`
	AvgCompletionRate int     `json:"avgCompletionRate"`
	AvgGrade          int     `json:"avgGrade"`
	PendingGrades     int     `json:"pendingGrades"`
	TotalRevenue      float64 `json:"totalRevenue"`
	CacheHit          bool    `json:"-"`
}

// StudentAnalyticsResponse summarizes one student's learning activity.
type StudentAnalyticsResponse struct {
	TotalCourses         int  `json:"totalCourses"`
	ActiveCourses        int  `json:"activeCourses"`
	CompletedCourses     int  `json:"completedCourses"`
	AvgProgress          int  `json:"avgProgress"`
	TotalAssignments     int  `json:"totalAssignments"`
	SubmittedAssignments int  `json:"submittedAssignments"`
	AvgGrade             int  `json:"avgGrade"`
	PendingSubmissions   int  `json:"pendingSubmissions"`
	CacheHit             bool `json:"-"`
}
