package templates

import "fmt"

// NotFoundError is returned for a template key that is not in the catalog.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template not found: %q", e.Key)
}
