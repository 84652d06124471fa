package pipeline

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pipeline"

// Handler performs an operation on a request that passed validation.
type Handler[R, T any] func(ctx context.Context, req R) (T, error)

// Execute validates req and, when no failures are reported, invokes handle.
//
// Validators run concurrently. Their failures are merged in declaration order
// so that the first not-found failure is chosen deterministically.
func Execute[R, T any](ctx context.Context, op string, req R, validators []Validator[R], handle Handler[R, T]) Outcome[T] {
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()

	out := execute(ctx, req, validators, handle)

	span.SetAttributes(
		attribute.String("outcome.kind", out.Kind.String()),
		attribute.Int("outcome.failures", len(out.Failures)),
	)
	if out.Err != nil {
		span.RecordError(out.Err)
	}
	if out.Kind == KindFatal {
		span.SetStatus(codes.Error, out.Err.Error())
	}
	return out
}

func execute[R, T any](ctx context.Context, req R, validators []Validator[R], handle Handler[R, T]) Outcome[T] {
	failures, err := validate(ctx, req, validators)
	if err != nil {
		return fromError[T](err)
	}

	if len(failures) == 0 {
		v, err := handle(ctx, req)
		if err != nil {
			return fromError[T](err)
		}
		return Success(v)
	}

	for _, f := range failures {
		if f.Code == CodeNotFound {
			return NotFoundOutcome[T](f.Message)
		}
	}
	return InvalidOutcome[T](failures)
}

func validate[R any](ctx context.Context, req R, validators []Validator[R]) ([]Failure, error) {
	if len(validators) == 0 {
		return nil, nil
	}

	results := make([][]Failure, len(validators))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range validators {
		g.Go(func() error {
			fs, err := v.Validate(gctx, req)
			if err != nil {
				return err
			}
			results[i] = fs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failures []Failure
	for _, fs := range results {
		failures = append(failures, fs...)
	}
	return failures, nil
}

func fromError[T any](err error) Outcome[T] {
	var rejection Failure
	if errors.As(err, &rejection) {
		if rejection.Code == CodeNotFound {
			return NotFoundOutcome[T](rejection.Message)
		}
		return InvalidOutcome[T]([]Failure{rejection})
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Canceled[T](err)
	}
	return Fatal[T](err)
}
