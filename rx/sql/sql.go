// Package sql provides stream adapters for database operations using database/sql.
// It lets query results take part in rx pipelines.
//
// Sources in this package run their query on a separate goroutine, so
// subscribing never blocks on the database. Each subscription runs the query
// again; unsubscribing cancels the query's context.
package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Scanner is a function that scans a row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query creates an Observable that executes a query and emits one value per
// row. The scanner function is called for each row to convert it to the
// output type; a scanner error terminates the stream.
func Query[T any](db *sql.DB, query string, scanner Scanner[T], args ...any) core.Observable[T] {
	if scanner == nil {
		panic("sql.Query: scanner must not be nil")
	}
	return core.Emit(func(sub *core.Subscriber[T]) {
		ctx := subscriptionContext(sub)
		go func() {
			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				sub.Error(err)
				return
			}
			defer rows.Close()
			for rows.Next() {
				if sub.Closed() {
					return
				}
				var (
					value   T
					scanErr error
				)
				if err := core.Try(func() { value, scanErr = scanner(rows) }); err != nil {
					sub.Error(err)
					return
				}
				if scanErr != nil {
					sub.Error(fmt.Errorf("scan row: %w", scanErr))
					return
				}
				sub.Next(value)
			}
			if err := rows.Err(); err != nil {
				sub.Error(err)
				return
			}
			sub.Complete()
		}()
	})
}

// QueryRow creates an Observable that executes a query expecting a single
// row. It emits the scanned value and completes. When the query returns no
// rows the stream completes without a value.
func QueryRow[T any](db *sql.DB, query string, scanner func(*sql.Row) (T, error), args ...any) core.Observable[T] {
	if scanner == nil {
		panic("sql.QueryRow: scanner must not be nil")
	}
	return core.Emit(func(sub *core.Subscriber[T]) {
		ctx := subscriptionContext(sub)
		go func() {
			row := db.QueryRowContext(ctx, query, args...)
			var (
				value T
				err   error
			)
			if perr := core.Try(func() { value, err = scanner(row) }); perr != nil {
				err = perr
			}
			switch {
			case errors.Is(err, sql.ErrNoRows):
			case err != nil:
				sub.Error(err)
				return
			default:
				sub.Next(value)
			}
			sub.Complete()
		}()
	})
}

// ExecResult contains the result of an exec operation.
type ExecResult struct {
	LastInsertId int64
	RowsAffected int64
}

func newExecResult(result sql.Result) ExecResult {
	lastID, _ := result.LastInsertId()
	rowsAffected, _ := result.RowsAffected()
	return ExecResult{
		LastInsertId: lastID,
		RowsAffected: rowsAffected,
	}
}

// Exec creates an Observable that executes a statement and emits the result.
func Exec(db *sql.DB, query string, args ...any) core.Observable[ExecResult] {
	return core.Emit(func(sub *core.Subscriber[ExecResult]) {
		ctx := subscriptionContext(sub)
		go func() {
			result, err := db.ExecContext(ctx, query, args...)
			if err != nil {
				sub.Error(err)
				return
			}
			sub.Next(newExecResult(result))
			sub.Complete()
		}()
	})
}

// ExecEach creates an operator that executes a statement for each input value.
// The binder function converts the input value to query arguments. The
// statement runs on the goroutine delivering the value; the first failure
// terminates the stream.
func ExecEach[T any](db *sql.DB, query string, binder func(T) []any) core.OperatorFunc[T, ExecResult] {
	if binder == nil {
		panic("sql.ExecEach: binder must not be nil")
	}
	return func(dest *core.Subscriber[ExecResult]) *core.Subscriber[T] {
		var (
			sub *core.Subscriber[T]
			ctx context.Context
		)
		sub = core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: func(v T) {
				var args []any
				if err := core.Try(func() { args = binder(v) }); err != nil {
					sub.Error(err)
					return
				}
				result, err := db.ExecContext(ctx, query, args...)
				if err != nil {
					sub.Error(err)
					return
				}
				dest.Next(newExecResult(result))
			},
			OnError:    dest.Error,
			OnComplete: dest.Complete,
		})
		ctx = subscriptionContext(sub)
		return sub
	}
}

// QueryMaps is a convenience function that queries for map results.
// Each row is scanned into a map with column names as keys.
func QueryMaps(db *sql.DB, query string, args ...any) core.Observable[map[string]any] {
	return Query(db, query, func(rows *sql.Rows) (map[string]any, error) {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		result := make(map[string]any, len(cols))
		for i, col := range cols {
			result[col] = values[i]
		}
		return result, nil
	}, args...)
}

// subscriptionContext returns a context cancelled when sub is torn down.
func subscriptionContext(sub core.SubscriptionLike) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sub.Add(core.NewSubscription(func() error {
		cancel()
		return nil
	}))
	return ctx
}
