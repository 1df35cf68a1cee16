package dto

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type FieldErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   ErrorDetail        `json:"error"`
	Details []FieldErrorDetail `json:"details,omitempty"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required" example:"admin"`
}

type TokenResponse struct {
	Token string `json:"token" example:"Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
