package infra

import (
	"log/slog"

	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/pkg/pgconv"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies a driver error. Duplicate keys surface as state
// conflicts, everything else keeps no class and maps to an internal error.
func WrapRepoErr(msg string, err error) error {
	kind := KindDBFailure
	switch {
	case pgconv.IsNoRows(err):
		kind = KindNotFound
	case pgconv.IsUniqueViolation(err):
		kind = KindDuplicateKey
	case pgconv.IsForeignKeyViolation(err):
		kind = KindForeignKeyViolated
	}

	slog.Error("Repository error: "+msg, slog.String("kind", string(kind)), slog.Any("error", err))

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	repoErr := RepositoryError{Kind: kind, msg: msg, err: err}
	switch kind {
	case KindDuplicateKey:
		return errs.Mark(repoErr, errs.ErrStateConflict)
	case KindNotFound:
		return errs.Mark(repoErr, errs.ErrNotFound)
	default:
		return repoErr
	}
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)
