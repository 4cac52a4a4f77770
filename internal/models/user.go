package models

// DateLayout is the calendar-date format used throughout the collection blobs.
const DateLayout = "2006-01-02"

// Role enumerates the two account kinds.
type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
)

// User is an identity record. The id doubles as the email address; lookups
// accept either.
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Username       string   `json:"username"`
	Password       string   `json:"password"`
	Role           Role     `json:"role"`
	Joined         string   `json:"joined"`
	Bio            string   `json:"bio"`
	ProfileImage   string   `json:"profileImage"`
	Expertise      []string `json:"expertise,omitempty"`
	Education      string   `json:"education,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// IsTeacher reports whether the user holds the teacher role.
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }

// Matches reports whether the given identifier resolves to this user, by id or
// email.
func (u User) Matches(idOrEmail string) bool {
	return idOrEmail != "" && (u.ID == idOrEmail || u.Email == idOrEmail)
}
