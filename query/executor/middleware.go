package executor

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// QueryEvent represents a statement execution
type QueryEvent struct {
	Query    string
	Duration time.Duration
	Error    error
	Start    time.Time
	End      time.Time
}

// Middleware intercepts statements. It must call next exactly once to run
// the statement and should return its error.
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

func chain(ctx context.Context, middlewares []Middleware, event *QueryEvent, exec func() error) error {
	var next func() error
	index := 0

	next = func() error {
		if index >= len(middlewares) {
			err := exec()
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Error = err
			return err
		}

		mw := middlewares[index]
		index++
		return mw(ctx, event, next)
	}

	return next()
}

// LoggingMiddleware logs statements at debug level and failures at error level
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		logger.DebugContext(ctx, "executing query", "sql", event.Query)
		err := next()
		if err != nil {
			attrs := []any{"sql", event.Query, "duration", event.Duration, "error", err}
			var qe *QueryError
			if errors.As(err, &qe) && qe.Code != 0 {
				attrs = append(attrs, "code", qe.Code)
			}
			logger.ErrorContext(ctx, "query failed", attrs...)
			return err
		}
		logger.DebugContext(ctx, "query completed", "duration", event.Duration)
		return nil
	}
}

// TimingMiddleware reports the duration of every statement
func TimingMiddleware(onTiming func(query string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event.Query, event.Duration)
		}
		return err
	}
}

// ErrorMiddleware reports failed statements
func ErrorMiddleware(onError func(query string, err error)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil && onError != nil {
			onError(event.Query, err)
		}
		return err
	}
}
