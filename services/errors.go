package services

// ValidationError reports a rejected write and the field that caused the
// rejection. Messages mirror the wording the dashboard already displays.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
