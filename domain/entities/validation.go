package entities

// ValidationResult represents the outcome of validating a grants document.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError is one schema violation; Field is the instance location.
type ValidationError struct {
	Field   string
	Message string
}
