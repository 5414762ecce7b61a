package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes maps the SQLSTATEs the audit store can hit, anything else is ErrorCodeDB
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	// tables not migrated yet or a replica in recovery count as unavailable
	"42P01": ErrorCodeUnavailable,
	"57P03": ErrorCodeUnavailable,
	"25006": ErrorCodeUnavailable,
}

// FromPostgres wraps a pgx error under msg with the code its SQLSTATE maps to
// a column named by the server becomes the error field; nil in, nil out
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return Wrap(err, ErrorCodeDB, msg)
	}
	code, ok := pgCodes[pgErr.Code]
	if !ok {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if pgErr.ColumnName != "" {
		out = WithField(out, pgErr.ColumnName)
	}
	return out
}
