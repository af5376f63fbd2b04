package content

import (
	"fmt"
	"regexp"
)

var (
	messageCodeRX     = regexp.MustCompile(`^cvc[A-Za-z0-9\-.]+:\s*`)
	messageExpectedRX = regexp.MustCompile(`\s*One of '.*' is expected\.$`)
)

// InvalidContentError reports content that failed validation. Line and
// Column locate the error in the submitted content.
type InvalidContentError struct {
	Message string
	Line    int
	Column  int
}

// NewInvalidContentError builds an InvalidContentError, stripping validator
// error codes and expected-element hints from msg.
func NewInvalidContentError(msg string, line, column int) *InvalidContentError {
	return &InvalidContentError{
		Message: cleanMessage(msg),
		Line:    line,
		Column:  column,
	}
}

func (e *InvalidContentError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func cleanMessage(msg string) string {
	msg = messageCodeRX.ReplaceAllString(msg, "")
	msg = messageExpectedRX.ReplaceAllString(msg, "")
	return msg
}

// InvalidContentTypeError reports a mime type no filter is registered for.
type InvalidContentTypeError struct {
	MimeType string
}

func (e *InvalidContentTypeError) Error() string {
	return fmt.Sprintf("unknown content type %s", e.MimeType)
}
