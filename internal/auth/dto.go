package auth

// LoginDTO is the login request body. Staff sign in with their name,
// not an email address.
type LoginDTO struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponseDTO mirrors the legacy login payload, extended with the
// session tokens.
type LoginResponseDTO struct {
	Message      string `json:"message"`
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Name == "" || d.Password == "" {
		return ValidationError{Msg: "Name and password are required"}
	}
	return nil
}

// Validate for refresh token DTO
func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}
