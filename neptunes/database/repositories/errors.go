package repositories

import (
	"database/sql"
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrNotFound replaces sql.ErrNoRows at the repository boundary so callers
// can branch on a plain found/not-found result instead of driver errors.
var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// IsConflict reports whether err is a uniqueness/integrity violation. Inserts
// racing on a natural key downgrade to "already exists" through this check.
func IsConflict(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.IntegrityViolation()
}
