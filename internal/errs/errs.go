// Package errs aggregates multiple errors into one, for operations that
// touch several nodes or edges at once (e.g. repairing a dynamic
// network's edges).
package errs

import "strings"

// List wraps the errors collected from several independent operations.
type List []error

// Add appends err to the list if it is non-nil.
func (l List) Add(err error) List {
	if err == nil {
		return l
	}
	return append(l, err)
}

func (l List) Error() string {
	s := make([]string, 0, len(l))
	for _, e := range l {
		s = append(s, e.Error())
	}
	return strings.Join(s, "; ")
}

// Err returns nil if the list is empty, else the list itself as an error.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
