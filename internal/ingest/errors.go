package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGrammar marks a line that does not match the grammar expected in
	// its context. Recovered locally; the line is skipped.
	ErrGrammar = errors.New("grammar mismatch")
	// ErrFatalField marks a required field with no safe default, such as a
	// malformed year. Fatal for the current file.
	ErrFatalField = errors.New("unparsable required field")
	// ErrOwnerMissing marks a dependent line whose owner lookup found
	// nothing. The group is dropped; no placeholder owner is fabricated.
	ErrOwnerMissing = errors.New("owner not resolved")
	// ErrLocked indicates another ingest run holds the run lock.
	ErrLocked = errors.New("ingest already running")
)

// Wrap builds an error message that includes source-file context while
// tagging it with the provided marker for classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, source, operation, message string, err error) error {
	detail := buildDetail(source, operation, message)
	if marker == nil {
		marker = ErrGrammar
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(source, operation, message string) string {
	parts := make([]string, 0, 3)
	if source = strings.TrimSpace(source); source != "" {
		parts = append(parts, source)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "ingest failure"
	}
	return strings.Join(parts, ": ")
}
