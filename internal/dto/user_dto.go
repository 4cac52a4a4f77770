package dto

import "github.com/lumenhq/lumen-api/internal/models"

// SignupRequest registers a new identity. The email becomes the record id.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=Student Teacher"`
	Bio      string `json:"bio"`
}

// UserUpdateRequest carries a partial profile update; nil fields are left
// untouched.
type UserUpdateRequest struct {
	Name           *string   `json:"name"`
	Bio            *string   `json:"bio"`
	ProfileImage   *string   `json:"profileImage"`
	Expertise      *[]string `json:"expertise"`
	Education      *string   `json:"education"`
	Certifications *[]string `json:"certifications"`
}

// UserResponse is the outward user shape; the stored password never leaves the
// service layer.
type UserResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Username       string      `json:"username"`
	Role           models.Role `json:"role"`
	Joined         string      `json:"joined"`
	Bio            string      `json:"bio"`
	ProfileImage   string      `json:"profileImage"`
	Expertise      []string    `json:"expertise,omitempty"`
	Education      string      `json:"education,omitempty"`
	Certifications []string    `json:"certifications,omitempty"`
}

// NewUserResponse converts a stored user into its outward shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Username:       user.Username,
		Role:           user.Role,
		Joined:         user.Joined,
		Bio:            user.Bio,
		ProfileImage:   user.ProfileImage,
		Expertise:      user.Expertise,
		Education:      user.Education,
		Certifications: user.Certifications,
	}
}

// NewUserResponseSlice converts a user collection.
func NewUserResponseSlice(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}

// InstructorStudent is one row of an instructor's student roster, annotated
// with aggregates across that instructor's enrollments.
type InstructorStudent struct {
	UserResponse
	EnrolledCourses int    `json:"enrolledCourses"`
	AverageProgress int    `json:"averageProgress"`
	LastActivity    string `json:"lastActivity"`
}
