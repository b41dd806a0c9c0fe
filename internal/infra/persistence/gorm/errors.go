package gormpersistence

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// mysqlErrDuplicateEntry is the MySQL error number for a unique-key
// violation (ER_DUP_ENTRY).
const mysqlErrDuplicateEntry = 1062

// isDuplicateEntryError reports whether err is a unique-constraint
// violation. The driver error check is authoritative for MySQL; the
// string fallback covers errors re-wrapped by GORM or other drivers
// used in tests.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
