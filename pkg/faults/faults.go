// Package faults provides the generic classify-and-suggest error handling
// applied around the wizard's save/load calls: a small category taxonomy,
// user-facing recovery suggestions, and backoff retry for the retryable
// categories.
package faults

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
)

// Category buckets an error for recovery handling.
type Category string

const (
	CategoryValidation  Category = "validation"
	CategoryNetwork     Category = "network"
	CategoryPersistence Category = "persistence"
	CategoryState       Category = "state"
)

// Classified is the user-facing view of an error: what bucket it landed in,
// a message suitable for display, and recovery suggestions.
type Classified struct {
	Category    Category `json:"category"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	Retryable   bool     `json:"retryable"`
}

type categorized struct {
	category Category
	err      error
}

func (c *categorized) Error() string { return c.err.Error() }

func (c *categorized) Unwrap() error { return c.err }

// Validation wraps err as a non-retryable validation fault.
func Validation(err error) error {
	return &categorized{category: CategoryValidation, err: err}
}

// Validationf builds a validation fault from a format string.
func Validationf(format string, args ...interface{}) error {
	return Validation(fmt.Errorf(format, args...))
}

// Network wraps err as a retryable network fault.
func Network(err error) error {
	return &categorized{category: CategoryNetwork, err: err}
}

// Persistence wraps err as a retryable persistence fault.
func Persistence(err error) error {
	return &categorized{category: CategoryPersistence, err: err}
}

// State wraps err as an application-state fault.
func State(err error) error {
	return &categorized{category: CategoryState, err: err}
}

// Classify buckets an error into the taxonomy. Explicitly wrapped faults
// keep their category; otherwise network and filesystem error types are
// recognized, and anything else is treated as application state.
func Classify(err error) Classified {
	if err == nil {
		return Classified{}
	}

	category := CategoryState
	var wrapped *categorized
	var netErr net.Error
	switch {
	case errors.As(err, &wrapped):
		category = wrapped.category
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		category = CategoryNetwork
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrClosed):
		category = CategoryPersistence
	}

	return Classified{
		Category:    category,
		Message:     messageFor(category),
		Suggestions: suggestionsFor(category),
		Retryable:   category == CategoryNetwork || category == CategoryPersistence,
	}
}

func messageFor(category Category) string {
	switch category {
	case CategoryValidation:
		return "Some of the information provided is invalid."
	case CategoryNetwork:
		return "We couldn't reach the server."
	case CategoryPersistence:
		return "Your progress could not be saved."
	default:
		return "Something went wrong."
	}
}

func suggestionsFor(category Category) []string {
	switch category {
	case CategoryValidation:
		return []string{"Check the highlighted fields", "Correct the values and try again"}
	case CategoryNetwork:
		return []string{"Check your connection", "Retry"}
	case CategoryPersistence:
		return []string{"Retry", "Your inputs are kept locally until the save succeeds"}
	default:
		return []string{"Refresh the page", "Contact support if the problem persists"}
	}
}
