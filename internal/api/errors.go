package api

import "fmt"

// FetchError reports a failed collection read. Status is zero when the
// failure happened before an HTTP status was received.
type FetchError struct {
	Table  string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: http %d", e.Table, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SaveError reports a bulk save that failed after exhausting every
// attempt. Attempts is the total number of tries issued.
type SaveError struct {
	Table    string
	Attempts int
	Err      error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s failed after %d attempts: %v", e.Table, e.Attempts, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// UpdateError reports a failed replace-by-id. No retry is attempted.
type UpdateError struct {
	Table  string
	ID     string
	Status int
	Err    error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s/%s: %v", e.Table, e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// DeleteError reports a failed delete-by-id. No retry is attempted.
type DeleteError struct {
	Table  string
	ID     string
	Status int
	Err    error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s/%s: %v", e.Table, e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
