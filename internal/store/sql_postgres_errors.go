package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification says whether a failed statement is worth another
// attempt.
type ErrorClassification int

const (
	// NonRetryable covers everything that would fail the same way
	// again: constraint violations, bad SQL, data errors, and any
	// failure the classifier does not recognise.
	NonRetryable ErrorClassification = iota

	// Retryable covers transient faults: lost connections, deadlock
	// and serialization rollbacks, a server that cannot accept
	// connections yet.
	Retryable
)

// ErrorClassificator inspects driver errors for retry decisions. The
// expired-session delete retries once on a Retryable verdict.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier classifies pgx driver errors by their
// PostgreSQL error code.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify returns Retryable only for *pgconn.PgError values whose
// code names a transient condition. nil and non-Postgres errors come
// back NonRetryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a PostgreSQL error code to a classification.
// The transient classes are 08 (connection exceptions), 40
// (transaction rollbacks) and 57P03 (cannot connect now); every other
// code is permanent as far as a retry is concerned.
//
// Full code list: https://www.postgresql.org/docs/current/errcodes-appendix.html
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}
