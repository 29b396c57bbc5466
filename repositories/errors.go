package repositories

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Driver error codes for unique-constraint violations.
const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate is returned when an insert hits a unique index.
var ErrDuplicate = errors.New("duplicate key")

// IsNotFound checks GORM's "record not found" sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate recognises unique violations whether or not GORM translated them.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Code == pgUniqueViolation {
		return true
	}
	var me *gomysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return true
	}
	return false
}

// translate maps driver-level errors onto the package sentinels.
func translate(err error) error {
	if IsDuplicate(err) {
		return ErrDuplicate
	}
	return err
}
