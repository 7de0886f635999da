package dto

// ErrorResponse carries a caller-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
