package message

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// isForeignKeyViolation recognizes Postgres SQLSTATE 23503, the belt-and-
// suspenders case where a recipient existed at the AccountExists check but
// was deleted before the insert committed (§4.1: "foreign-key violation on
// send surfaces as recipient unknown").
func isForeignKeyViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23503"
	}
	return false
}
