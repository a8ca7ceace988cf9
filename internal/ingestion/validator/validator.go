// Package validator checks corpus entries before they reach the server. It
// covers what the server cannot see, such as status names, and returns
// per-field error details.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/documents"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
)

const maxTextLength = 1048576

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e.Fields[field])
	}
	return strings.Join(parts, "; ")
}

// ValidateEntry checks e and returns its status. Id and text rules are left
// to the server.
func ValidateEntry(e *ingestion.Entry) (documents.Status, error) {
	errs := make(map[string]string)

	status := documents.StatusActual
	if e.Status != "" {
		s, ok := documents.ParseStatus(e.Status)
		if !ok {
			errs["status"] = fmt.Sprintf("unknown status %q", e.Status)
		}
		status = s
	}
	if len(e.Text) > maxTextLength {
		errs["text"] = fmt.Sprintf("text must be at most %d bytes", maxTextLength)
	}
	if len(errs) > 0 {
		return 0, &ValidationError{Fields: errs}
	}
	return status, nil
}
