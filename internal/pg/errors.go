package pg

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskhive/taskhive/internal/domain"
)

const uniqueViolation = "23505"

// TranslateError maps a driver error to a domain error kind. Unique
// violations become ErrConflict; anything else is treated as the store
// being unavailable, since repositories express their preconditions as
// conditional updates rather than constraint violations.
func TranslateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
