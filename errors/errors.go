// Package errors defines the error types the parser reports: per-token
// parse errors surfaced during tokenization/tree construction, and
// selector syntax errors surfaced by the selector package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented marks a code path for a feature this parser
// deliberately doesn't support yet.
var ErrNotImplemented = errors.New("not implemented")

// SelectorError reports a syntax problem found while parsing a CSS
// selector string.
type SelectorError struct {
	Selector string
	Position int
	Message  string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at position %d: %s", e.Selector, e.Position, e.Message)
}

// ParseError is one HTML5 "parse error" as defined by the spec: a
// recoverable deviation from well-formed markup, tagged with the
// spec's error code and the input location it was found at.
type ParseError struct {
	// Code is one of the WHATWG HTML5 parse-error codes, e.g.
	// "unexpected-null-character".
	Code    string
	Message string

	// Line and Column are 1-based; a zero Column means location
	// tracking wasn't available and Error() omits the position.
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseErrors aggregates every ParseError collected during a parse.
// It satisfies the error interface itself so a ParseErrors value can be
// returned and type-asserted or errors.As'd by callers that asked for
// error collection.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	switch len(e) {
	case 0:
		return "no parse errors"
	case 1:
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:\n", len(e))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors for errors.Is/errors.As.
func (e ParseErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}
