package rest

type ResponseError struct {
	Message string `json:"message"`
}

// ErrorDetail is the 500-equivalent body for critical upstream failures:
// a short error, the underlying detail, and actionable suggestions.
type ErrorDetail struct {
	Error       string   `json:"error"`
	Details     string   `json:"details,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
