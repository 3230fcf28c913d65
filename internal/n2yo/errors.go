package n2yo

import (
	"errors"
	"fmt"
)

// Category classifies a failed N2YO call
type Category string

const (
	// CategoryTransport means no response was received
	CategoryTransport Category = "transport"
	// CategoryStatus means the service answered with a non-200 status
	CategoryStatus Category = "status"
	// CategoryBadData means the body could not be decoded
	CategoryBadData Category = "bad_data"
	// CategoryRejected means the service answered 200 but reported an error,
	// typically an invalid API key or an exhausted transaction quota
	CategoryRejected Category = "rejected"
	// CategoryNoName means the metadata record carried no satellite name
	CategoryNoName Category = "no_name"
)

// Error wraps N2YO failures with a category
type Error struct {
	Category    Category
	SatelliteID int
	StatusCode  int
	Message     string
	Underlying  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("n2yo satellite %d [%s]: %s", e.SatelliteID, e.Category, e.Message)
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Underlying
}

// GetCategory extracts the category from an error chain
func GetCategory(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}
	return "", false
}
