package builder

import "fmt"

// IndexError is returned when an edit targets an item that does not exist.
type IndexError struct {
	Collection string
	Index      int
	Len        int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (len %d)", e.Collection, e.Index, e.Len)
}
