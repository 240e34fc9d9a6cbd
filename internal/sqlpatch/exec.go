package sqlpatch

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgconn"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/tansive/tristate/internal/common/logtrace"
)

// Execer is the part of *sql.DB, *sql.Conn and *sql.Tx that Exec needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Open opens a PostgreSQL database through the pgx driver and checks the
// connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, ErrOpen.Err(err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, ErrOpen.Err(err)
	}
	return db, nil
}

// RetryPolicy controls how Exec retries transient failures.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
}

// DefaultRetryPolicy is used when Exec is given none.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 200 * time.Millisecond}

// Exec runs stmt and returns the number of affected rows. Failures that are
// known to be safe to retry are retried with exponential backoff.
func Exec(ctx context.Context, db Execer, stmt Statement, policy ...RetryPolicy) (int64, error) {
	p := DefaultRetryPolicy
	if len(policy) > 0 {
		p = policy[0]
	}
	logger := logtrace.Logger(ctx)

	var affected int64
	err := retry.Do(func() error {
		res, err := db.ExecContext(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	},
		retry.Context(ctx),
		retry.Attempts(p.Attempts),
		retry.Delay(p.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn().Err(err).Uint("attempt", n+1).Msg("retrying statement")
		}),
	)
	if err != nil {
		logger.Error().Err(err).Str("sql", stmt.SQL).Msg("statement failed")
		return 0, ErrExec.Err(err)
	}
	logger.Debug().Str("sql", stmt.SQL).Int64("rows", affected).Msg("statement executed")
	return affected, nil
}

func isTransient(err error) bool {
	var retryable interface{ SafeToRetry() bool }
	if errors.As(err, &retryable) {
		return retryable.SafeToRetry()
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err) || errors.Is(err, driver.ErrBadConn)
}
