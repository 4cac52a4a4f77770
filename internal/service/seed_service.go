package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/storage"
)

// SeedService populates the store with a fixed sample dataset on first use so
// the application renders without an onboarding flow.
type SeedService interface {
	EnsureSeedData(ctx context.Context) (bool, error)
}

type seedService struct {
	store  *storage.Store
	logger zerolog.Logger
}

// NewSeedService constructs the seeding service.
func NewSeedService(store *storage.Store, logger zerolog.Logger) SeedService {
	return &seedService{
		store:  store,
		logger: logger.With().Str("component", "seed_service").Logger(),
	}
}

// EnsureSeedData writes the sample dataset in one transaction when the course
// collection is absent. A second call is a no-op, and existing non-empty
// collections are never overwritten. Returns whether seeding ran.
func (s *seedService) EnsureSeedData(ctx context.Context) (bool, error) {
	seeded := false
	err := s.store.Update(ctx, func(tx *storage.Txn) error {
		exists, err := tx.Exists(storage.KeyCourses)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		if err := tx.Save(storage.KeyCourses, seedCourses()); err != nil {
			return err
		}
		if err := tx.Save(storage.KeyAssignments, seedAssignments()); err != nil {
			return err
		}
		if err := tx.Save(storage.KeyEnrollments, seedEnrollments()); err != nil {
			return err
		}
		if err := tx.Save(storage.KeyUsers, seedUsers()); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.logger.Info().Msg("sample dataset seeded")
	}
	return seeded, nil
}

func seedCourses() []models.Course {
	return []models.Course{
		{
			ID:             "1",
			Title:          "Introduction to Web Development",
			Description:    "Learn HTML, CSS, and JavaScript fundamentals",
			Category:       "Web Development",
			Level:          models.LevelBeginner,
			Duration:       "40 hours",
			Price:          99,
			Image:          "https://images.unsplash.com/photo-1627398242454-45a1465c2479?w=400",
			InstructorID:   "teacher1@email.com",
			InstructorName: "John Smith",
			CreatedAt:      "2024-01-15",
			Status:         models.CourseStatusPublished,
			Objectives: []string{
				"Build responsive websites with HTML and CSS",
				"Create interactive web pages with JavaScript",
				"Understand web development best practices",
			},
			Requirements: []string{
				"Basic computer literacy",
				"No prior programming experience needed",
			},
			Syllabus: []models.SyllabusModule{
				{Module: "HTML Fundamentals", Topics: []string{"HTML Structure", "Tags and Elements", "Forms and Tables"}},
				{Module: "CSS Styling", Topics: []string{"Selectors", "Layout", "Responsive Design"}},
				{Module: "JavaScript Basics", Topics: []string{"Variables", "Functions", "DOM Manipulation"}},
			},
			EnrolledStudents: []string{"student1@email.com", "student2@email.com"},
			Rating:           4.6,
			Reviews:          []models.Review{},
		},
		{
			ID:             "2",
			Title:          "Advanced React Concepts",
			Description:    "Deep dive into React hooks, context, and performance",
			Category:       "Web Development",
			Level:          models.LevelAdvanced,
			Duration:       "30 hours",
			Price:          149,
			Image:          "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=400",
			InstructorID:   "teacher1@email.com",
			InstructorName: "John Smith",
			CreatedAt:      "2024-02-01",
			Status:         models.CourseStatusPublished,
			Objectives: []string{
				"Master React hooks and context",
				"Optimize React application performance",
				"Build scalable React applications",
			},
			Requirements: []string{
				"Basic React knowledge",
				"JavaScript ES6+ familiarity",
			},
			Syllabus: []models.SyllabusModule{
				{Module: "Advanced Hooks", Topics: []string{"useEffect", "useContext", "Custom Hooks"}},
				{Module: "Performance Optimization", Topics: []string{"Memoization", "Code Splitting", "Bundle Analysis"}},
			},
			EnrolledStudents: []string{"student1@email.com"},
			Rating:           4.8,
			Reviews:          []models.Review{},
		},
	}
}

func seedAssignments() []models.Assignment {
	grade92 := 92
	grade95 := 95
	return []models.Assignment{
		{
			ID:           "1",
			Title:        "HTML/CSS Portfolio Project",
			Description:  "Create a personal portfolio website using HTML and CSS",
			CourseID:     "1",
			CourseName:   "Introduction to Web Development",
			InstructorID: "teacher1@email.com",
			Type:         models.AssignmentTypeProject,
			DueDate:      "2024-07-15",
			Points:       100,
			Status:       models.AssignmentStatusPublished,
			Instructions: "Build a responsive portfolio website that showcases your skills. Include at least 3 pages: Home, About, and Projects. Use modern CSS techniques like Flexbox or Grid for layout.",
			CreatedAt:    "2024-06-15",
			Submissions: []models.Submission{
				{
					StudentID:     "student1@email.com",
					StudentName:   "Alice Johnson",
					SubmittedAt:   "2024-07-09",
					Status:        models.SubmissionStatusGraded,
					Grade:         &grade92,
					Feedback:      "Excellent work! Clean code and great design. Consider adding more interactive elements.",
					SubmissionURL: "https://github.com/alice/portfolio",
				},
				{
					StudentID:     "student2@email.com",
					StudentName:   "Bob Smith",
					SubmittedAt:   "2024-07-10",
					Status:        models.SubmissionStatusPending,
					SubmissionURL: "https://github.com/bob/portfolio",
				},
			},
		},
		{
			ID:           "2",
			Title:        "React Components Quiz",
			Description:  "Test your understanding of React components and props",
			CourseID:     "2",
			CourseName:   "Advanced React Concepts",
			InstructorID: "teacher1@email.com",
			Type:         models.AssignmentTypeQuiz,
			DueDate:      "2024-07-10",
			Points:       50,
			Status:       models.AssignmentStatusPublished,
			Instructions: "Complete all questions about React components, props, and state management.",
			CreatedAt:    "2024-06-20",
			Submissions: []models.Submission{
				{
					StudentID:   "student1@email.com",
					StudentName: "Alice Johnson",
					SubmittedAt: "2024-07-05",
					Status:      models.SubmissionStatusGraded,
					Grade:       &grade95,
					Feedback:    "Perfect understanding of React concepts!",
				},
			},
		},
	}
}

func seedEnrollments() []models.Enrollment {
	return []models.Enrollment{
		{
			ID: "1", StudentID: "student1@email.com", StudentName: "Alice Johnson",
			CourseID: "1", CourseName: "Introduction to Web Development", InstructorID: "teacher1@email.com",
			EnrolledAt: "2024-01-20", Progress: 75, Status: models.EnrollmentStatusActive,
			CompletedLessons: 15, TotalLessons: 20, LastAccessed: "2024-07-01",
		},
		{
			ID: "2", StudentID: "student1@email.com", StudentName: "Alice Johnson",
			CourseID: "2", CourseName: "Advanced React Concepts", InstructorID: "teacher1@email.com",
			EnrolledAt: "2024-02-15", Progress: 60, Status: models.EnrollmentStatusActive,
			CompletedLessons: 9, TotalLessons: 15, LastAccessed: "2024-06-28",
		},
		{
			ID: "3", StudentID: "student2@email.com", StudentName: "Bob Smith",
			CourseID: "1", CourseName: "Introduction to Web Development", InstructorID: "teacher1@email.com",
			EnrolledAt: "2024-02-10", Progress: 45, Status: models.EnrollmentStatusActive,
			CompletedLessons: 9, TotalLessons: 20, LastAccessed: "2024-06-25",
		},
	}
}

// seedPassword is the shared demo credential; real accounts come from signup.
const seedPassword = "password123"

func seedUsers() []models.User {
	return []models.User{
		{
			ID: "teacher1@email.com", Name: "John Smith", Email: "teacher1@email.com",
			Username: "johnsmith", Password: seedPassword, Role: models.RoleTeacher, Joined: "2023-12-01",
			Bio:       "Experienced web developer with 8+ years in the industry",
			Expertise: []string{"JavaScript", "React", "Node.js", "Web Development"},
			Education: "M.S. Computer Science, Stanford University",
		},
		{
			ID: "student1@email.com", Name: "Alice Johnson", Email: "student1@email.com",
			Username: "alicejohnson", Password: seedPassword, Role: models.RoleStudent, Joined: "2024-01-15",
			Bio: "Aspiring web developer",
		},
		{
			ID: "student2@email.com", Name: "Bob Smith", Email: "student2@email.com",
			Username: "bobsmith", Password: seedPassword, Role: models.RoleStudent, Joined: "2024-02-10",
			Bio: "Career changer looking to learn web development",
		},
	}
}
