package listing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNotOwner        = errors.New("user is not the owner of this listing")
)

// FieldError describes a single invalid or missing field on a draft.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found on a draft so the caller can
// surface them inline instead of one at a time.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return "invalid listing: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}
