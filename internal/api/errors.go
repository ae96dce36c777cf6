package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Issue describes a single validation failure on a request field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error represents an API error with an HTTP status
type Error struct {
	Status  int     `json:"-"`
	Message string  `json:"error"`
	Issues  []Issue `json:"issues,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// NewError creates a new API error
func NewError(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
	}
}

// NewValidationError creates a 400 error carrying structured issues
func NewValidationError(issues []Issue) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Issues:  issues,
	}
}

// validationIssues flattens an error from request binding into field issues.
// Binding failures that are not field-level (malformed JSON, wrong types)
// collapse into a single body issue.
func validationIssues(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Field: "body", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = fmt.Sprintf("must be at least %s characters", fe.Param())
		default:
			msg = fmt.Sprintf("failed %s validation", fe.Tag())
		}
		issues = append(issues, Issue{Field: fieldName(fe), Message: msg})
	}
	return issues
}

// fieldName prefers the JSON name of the failed field
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "body"
	}
	// Struct field name; JSON names here only differ in case of the first rune
	return lowerFirst(name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] - 'A' + 'a'
	}
	return string(r)
}

// abortWithError writes an API error as the JSON response
func abortWithError(c *gin.Context, err *Error) {
	c.AbortWithStatusJSON(err.Status, err)
}
