package dto

// ErrorResponse is the single error envelope every endpoint returns.
// Code mirrors the HTTP status so clients parsing only the body still
// see the outcome.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}
