package models

// LoginRequest represents a submitted login form
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned when the form passes validation
type LoginResponse struct {
	Status   string `json:"status"`
	Username string `json:"username"`
}

// ValidationErrorResponse lists the form fields that failed validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
