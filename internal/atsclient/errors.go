package atsclient

import "fmt"

// RequestError is a non-2xx response from the analysis service.
type RequestError struct {
	StatusCode int
	// Message is the service's "error" field, or the status text when absent.
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("analysis service returned %d: %s", e.StatusCode, e.Message)
}

// ReportError is a 2xx response whose body is not a usable report.
type ReportError struct {
	Err error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("analysis service returned an invalid report: %v", e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
