package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"strings"
)

// ClassifiedError is a structured error with category, severity and context.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// Error renders "[category:severity] message", then the entry and node it
// concerns when known, then the cause.
func (e *ClassifiedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] %s", e.category, e.severity, e.message)
	if id, ok := e.context.GetString(ContextEntryID); ok {
		fmt.Fprintf(&b, " (entry %s)", id)
	}
	if node, ok := e.context.GetString(ContextNode); ok {
		fmt.Fprintf(&b, " (node %s)", node)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// Unwrap implements Go 1.13+ error unwrapping.
func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

// Category returns the error category.
func (e *ClassifiedError) Category() ErrorCategory {
	return e.category
}

// Severity returns the error severity.
func (e *ClassifiedError) Severity() ErrorSeverity {
	return e.severity
}

// Message returns the error message.
func (e *ClassifiedError) Message() string {
	return e.message
}

// Cause returns the underlying error.
func (e *ClassifiedError) Cause() error {
	return e.cause
}

// Context returns the error context.
func (e *ClassifiedError) Context() ErrorContext {
	return e.context
}

// WithContext returns a copy of the error with an extra context value.
// The receiver is left untouched so a shared error value stays stable.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	ctx := make(ErrorContext, len(e.context)+1)
	maps.Copy(ctx, e.context)
	ctx[key] = value
	cp := *e
	cp.context = ctx
	return &cp
}

// ForEntry returns a copy tagged with the entry being rendered.
func (e *ClassifiedError) ForEntry(id string) *ClassifiedError {
	return e.WithContext(ContextEntryID, id)
}

// Is reports whether target is a ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.category == other.category && e.message == other.message
	}
	return false
}

// IsCategory checks if the error belongs to a specific category.
func (e *ClassifiedError) IsCategory(category ErrorCategory) bool {
	return e.category == category
}

// IsFatal checks if the error should stop the render call.
func (e *ClassifiedError) IsFatal() bool {
	return e.severity == SeverityFatal
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// IsClassified checks if err's chain contains a ClassifiedError.
func IsClassified(err error) bool {
	_, ok := AsClassified(err)
	return ok
}

// HasCategory checks if any classified error in the chain belongs to category.
func HasCategory(err error, category ErrorCategory) bool {
	for err != nil {
		classified, ok := AsClassified(err)
		if !ok {
			return false
		}
		if classified.category == category {
			return true
		}
		err = classified.cause
	}
	return false
}

// GetCategory extracts the outermost category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.Category()
	}
	return CategoryInternal
}

// EntryOf returns the entry an error was raised for, searching the chain.
func EntryOf(err error) (string, bool) {
	v, ok := ContextValue(err, ContextEntryID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// ContextValue searches the chain for a context key, outermost first.
func ContextValue(err error, key string) (any, bool) {
	for err != nil {
		classified, ok := AsClassified(err)
		if !ok {
			return nil, false
		}
		if v, ok := classified.context.Get(key); ok {
			return v, true
		}
		err = classified.cause
	}
	return nil, false
}
