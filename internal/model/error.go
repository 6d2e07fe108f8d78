package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError points a validation message at one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
