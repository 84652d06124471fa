package pipeline

import "context"

// Validator inspects a request and reports zero or more failures.
// A non-nil error means the validator could not run (store unavailable,
// context canceled); it is never used to report a failed check.
type Validator[R any] interface {
	Validate(ctx context.Context, req R) ([]Failure, error)
}

type ValidatorFunc[R any] func(ctx context.Context, req R) ([]Failure, error)

func (f ValidatorFunc[R]) Validate(ctx context.Context, req R) ([]Failure, error) {
	return f(ctx, req)
}

// Rule is one check inside a rule set. When Check reports false a failure with
// Field, Message and Code is recorded and the Then rules are skipped.
type Rule[R any] struct {
	Field   string
	Message string
	Code    Code
	Check   func(ctx context.Context, req R) (bool, error)
	Then    []Rule[R]
}

// Rules builds a validator that evaluates each rule in order.
func Rules[R any](rules ...Rule[R]) Validator[R] {
	return ValidatorFunc[R](func(ctx context.Context, req R) ([]Failure, error) {
		var failures []Failure
		for _, rule := range rules {
			fs, err := rule.evaluate(ctx, req)
			if err != nil {
				return nil, err
			}
			failures = append(failures, fs...)
		}
		return failures, nil
	})
}

func (r Rule[R]) evaluate(ctx context.Context, req R) ([]Failure, error) {
	ok, err := r.Check(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		code := r.Code
		if code == "" {
			code = CodeInvalid
		}
		return []Failure{{Field: r.Field, Message: r.Message, Code: code}}, nil
	}

	var failures []Failure
	for _, dep := range r.Then {
		fs, err := dep.evaluate(ctx, req)
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)
	}
	return failures, nil
}

// Check adapts a context-free predicate for use as Rule.Check.
func Check[R any](pred func(req R) bool) func(context.Context, R) (bool, error) {
	return func(_ context.Context, req R) (bool, error) {
		return pred(req), nil
	}
}
