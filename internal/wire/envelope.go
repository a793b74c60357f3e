package wire

import "time"

// Envelope wraps every provider response
type Envelope[T any] struct {
	Data      *T     `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

// Success wraps data in a successful envelope stamped with now
func Success[T any](data T, now time.Time) Envelope[T] {
	return Envelope[T]{
		Data:      &data,
		Success:   true,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// Failure builds an error envelope stamped with now
func Failure(message string, now time.Time) Envelope[struct{}] {
	return Envelope[struct{}]{
		Error:     message,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}
