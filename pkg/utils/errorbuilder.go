package utils

import (
	"context"
	"errors"
	"uptime-monitor/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// WrapStoreError classifies an error returned by a backing store client.
// Server-side rejections (a redis error reply, a postgres error) are internal
// faults; everything else means the store could not be reached in time.
func WrapStoreError(op string, err error, log *zerolog.Logger) error {
	if err == nil {
		return nil
	}

	// Context errors
	if errors.Is(err, context.Canceled) {
		return &apperror.Error{
			Kind:    apperror.RequestTimeout,
			Op:      op,
			Err:     err,
			Message: "request cancelled",
		}
	}

	// redis error replies
	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		log.Error().
			Str("op", op).
			Err(err).
			Msg("redis rejected command")

		return apperror.New(apperror.Internal, op, err).WithMessage("internal server error")
	}

	// postgres errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		log.Error().
			Str("op", op).
			Str("pg_code", pgErr.Code).
			Str("pg_constraint", pgErr.ConstraintName).
			Str("pg_table", pgErr.TableName).
			Str("pg_detail", pgErr.Detail).
			Err(err).
			Msg("postgres database error")

		return apperror.New(apperror.Internal, op, err).WithMessage("internal server error")
	}

	// unreachable, timed out, pool exhausted
	return &apperror.Error{
		Kind:    apperror.StorageUnavailable,
		Op:      op,
		Err:     err,
		Message: "storage unavailable",
	}
}
