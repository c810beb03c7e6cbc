package storage

import "fmt"

// StorageError represents a failure reading or writing a storage key
type StorageError struct {
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage %s %s: %s: %v", e.Op, e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage %s %s: %s", e.Op, e.Key, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
