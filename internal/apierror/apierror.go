// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package so internal details
// (store errors, stack traces) never reach the front desk.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError lists every violated rule of a domain validation.
type ValidationError struct {
	Detail  string   `json:"detail"`
	Errores []string `json:"errores"`
}

func NewValidation(errores []string) *ValidationError {
	if errores == nil {
		errores = []string{}
	}
	return &ValidationError{Detail: "Error de validacion", Errores: errores}
}

// FieldError reports binding-level failures keyed by field name.
type FieldError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFields(fields map[string]string) *FieldError {
	return &FieldError{Detail: "Error de validacion", Fields: fields}
}
