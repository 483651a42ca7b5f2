package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/feed-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// ViolationKind identifies the class of integrity constraint a statement violated.
type ViolationKind int

const (
	// ViolationNone means the error is not a constraint violation.
	ViolationNone ViolationKind = iota
	ViolationUnique
	ViolationForeignKey
	ViolationCheck
	ViolationNotNull
)

// String returns the lower-case name of the violation kind.
func (k ViolationKind) String() string {
	switch k {
	case ViolationUnique:
		return "unique"
	case ViolationForeignKey:
		return "foreign_key"
	case ViolationCheck:
		return "check"
	case ViolationNotNull:
		return "not_null"
	default:
		return "none"
	}
}

// ConstraintViolation is the structured form of a PostgreSQL integrity error.
type ConstraintViolation struct {
	Kind       ViolationKind
	Constraint string
}

// ClassifyConstraintViolation inspects err for a *pgconn.PgError and reports
// which kind of constraint it violated and the constraint's name. The second
// return value is false when err is not an integrity constraint violation.
func ClassifyConstraintViolation(err error) (ConstraintViolation, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ConstraintViolation{}, false
	}

	var kind ViolationKind
	switch pgErr.Code {
	case uniqueViolationCode:
		kind = ViolationUnique
	case foreignKeyViolationCode:
		kind = ViolationForeignKey
	case checkViolationCode:
		kind = ViolationCheck
	case notNullViolationCode:
		kind = ViolationNotNull
	default:
		return ConstraintViolation{}, false
	}
	return ConstraintViolation{Kind: kind, Constraint: pgErr.ConstraintName}, true
}

// conflictErrors maps unique constraints to the domain error they signal.
var conflictErrors = map[string]error{
	ConstraintUsersUserName: store.ErrUserExists,
	ConstraintViewsPair:     store.ErrAlreadyViewed,
	ConstraintLikesPair:     store.ErrAlreadyLiked,
}

// TranslateViolation returns the domain error registered for a unique
// violation on a known constraint, or nil if err is anything else.
func TranslateViolation(err error) error {
	v, ok := ClassifyConstraintViolation(err)
	if !ok || v.Kind != ViolationUnique {
		return nil
	}
	return conflictErrors[v.Constraint]
}

// MapError converts a driver error into a store error. Known unique
// violations become their domain sentinel; everything else is wrapped in a
// *store.StoreError (kind WriteFailed) that keeps the driver error reachable.
func MapError(err error, entity, operation string) error {
	if err == nil {
		return nil
	}
	if domainErr := TranslateViolation(err); domainErr != nil {
		return domainErr
	}
	return store.NewStoreError(entity, operation, err)
}

// CheckRowsAffected returns notFound when result reports zero affected rows.
// A failure to read the count is reported as a WriteFailed store error.
func CheckRowsAffected(result sql.Result, notFound error, entity, operation string) error {
	if result == nil {
		return store.NewStoreError(entity, operation, fmt.Errorf("nil result"))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError(entity, operation, fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
