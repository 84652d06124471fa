// Package pipeline runs request validators and dispatches validated requests
// to their handlers, translating the result into a closed set of outcomes.
package pipeline

import "fmt"

// Code classifies a validation failure.
type Code string

const (
	CodeInvalid  Code = "invalid"
	CodeNotFound Code = "not_found"
)

// Failure is a single labeled validation failure.
//
// Failure also implements error so a handler can reject a request that
// slipped past validation; the rejection is translated by its Code.
type Failure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    Code   `json:"code"`
}

func (f Failure) Error() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// Invalid returns an invalid-request failure for field.
func Invalid(field, message string) Failure {
	return Failure{Field: field, Message: message, Code: CodeInvalid}
}

// NotFound returns a not-found failure for field.
func NotFound(field, message string) Failure {
	return Failure{Field: field, Message: message, Code: CodeNotFound}
}

type Kind int

const (
	KindSuccess Kind = iota
	KindInvalid
	KindNotFound
	KindCanceled
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindCanceled:
		return "canceled"
	case KindFatal:
		return "fatal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of executing one request.
//
// Value is set only for KindSuccess, Failures only for KindInvalid, Message
// for KindNotFound, and Err for KindCanceled and KindFatal.
type Outcome[T any] struct {
	Kind     Kind
	Value    T
	Failures []Failure
	Message  string
	Err      error
}

func Success[T any](v T) Outcome[T] {
	return Outcome[T]{Kind: KindSuccess, Value: v}
}

func InvalidOutcome[T any](failures []Failure) Outcome[T] {
	return Outcome[T]{Kind: KindInvalid, Failures: failures}
}

func NotFoundOutcome[T any](message string) Outcome[T] {
	return Outcome[T]{Kind: KindNotFound, Message: message}
}

func Canceled[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: KindCanceled, Err: err}
}

func Fatal[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: KindFatal, Err: err}
}

// OK reports whether the outcome is a success.
func (o Outcome[T]) OK() bool { return o.Kind == KindSuccess }
