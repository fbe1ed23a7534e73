package account

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"

	"hush/internal/account/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// isUniqueViolation recognizes Postgres SQLSTATE 23505 surfaced through
// bun's pgdriver, per §4.1's "unique-constraint violation surfaces as a
// typed already-registered error" contract.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
