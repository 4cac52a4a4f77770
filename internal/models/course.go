package models

import (
	"math"
	"time"
)

// CourseStatus enumerates the course lifecycle states.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// CourseLevel enumerates difficulty levels.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// SyllabusModule is one ordered unit of a course syllabus.
type SyllabusModule struct {
	Module string   `json:"module"`
	Topics []string `json:"topics"`
}

// Review is one student's rating of a course. At most one review per student;
// re-rating replaces the earlier record.
type Review struct {
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Course is a teaching unit. Rating must always equal the 1-decimal mean of
// Reviews; mutate Reviews through RecomputeRating.
type Course struct {
	ID               ID               `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	Level            CourseLevel      `json:"level"`
	Duration         string           `json:"duration"`
	Price            float64          `json:"price"`
	Image            string           `json:"image"`
	InstructorID     string           `json:"instructorId"`
	InstructorName   string           `json:"instructorName"`
	CreatedAt        string           `json:"createdAt"`
	Status           CourseStatus     `json:"status"`
	Objectives       []string         `json:"objectives"`
	Requirements     []string         `json:"requirements"`
	Syllabus         []SyllabusModule `json:"syllabus"`
	EnrolledStudents []string         `json:"enrolledStudents"`
	Rating           float64          `json:"rating"`
	Reviews          []Review         `json:"reviews"`
}

// defaultLessonCount is assumed when a course carries no syllabus yet.
const defaultLessonCount = 10

// TotalLessons counts the syllabus topics across all modules, falling back to
// a default for courses without a syllabus.
func (c Course) TotalLessons() int {
	total := 0
	for _, module := range c.Syllabus {
		total += len(module.Topics)
	}
	if total == 0 {
		return defaultLessonCount
	}
	return total
}

// ReviewBy returns the review left by the given student, if any.
func (c Course) ReviewBy(studentID string) (Review, bool) {
	for _, review := range c.Reviews {
		if review.StudentID == studentID {
			return review, true
		}
	}
	return Review{}, false
}

// RecomputeRating refreshes the cached aggregate rating from the review list.
func (c *Course) RecomputeRating() {
	if len(c.Reviews) == 0 {
		c.Rating = 0
		return
	}
	sum := 0
	for _, review := range c.Reviews {
		sum += review.Rating
	}
	c.Rating = RoundRating(float64(sum) / float64(len(c.Reviews)))
}

// RoundRating rounds a rating mean to one decimal place.
func RoundRating(value float64) float64 {
	return math.Round(value*10) / 10
}
