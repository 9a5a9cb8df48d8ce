package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrSessionNotFound  = errors.New("SESSION_NOT_FOUND")
	ErrSessionKeyExists = errors.New("SESSION_KEY_EXISTS")
	ErrSessionReference = errors.New("SESSION_REFERENCE_INVALID")
	ErrNoRowsAffected   = errors.New("NO_ROWS_AFFECTED")
)

const (
	mysqlDuplicateEntry   = 1062
	mysqlForeignKeyFailed = 1452
)

func mysqlErrorNumber(err error) uint16 {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}
