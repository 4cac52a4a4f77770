package dto

// LoginRequest authenticates by email or username plus password.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// AuthResponse carries the authenticated identity and its bearer token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// SearchRequest records one search term into the history.
type SearchRequest struct {
	Term string `json:"term" validate:"required"`
}
