// Package validate holds the inline form checks shared by the visitor-facing forms.
package validate

import (
	"regexp"
	"sort"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether value looks like an email address.
func Email(value string) bool {
	return emailPattern.MatchString(value)
}

// FieldErrors maps form field names to a message for the visitor.
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error.
func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; exists {
		return
	}
	fe[field] = msg
}

// Set records msg for field, replacing any earlier message.
func (fe FieldErrors) Set(field, msg string) {
	fe[field] = msg
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Error lists the failing fields in a stable order.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when there are no field errors.
func (fe FieldErrors) Err() error {
	if fe.Empty() {
		return nil
	}
	return fe
}
