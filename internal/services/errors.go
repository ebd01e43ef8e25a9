package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

// RevocationError is returned when a token could not be revoked.
type RevocationError struct {
	TokenID string
	Reason  string
}

func (e *RevocationError) Error() string {
	if e.TokenID == "" {
		return fmt.Sprintf("token revocation failed: %s", e.Reason)
	}
	return fmt.Sprintf("token revocation failed for %s: %s", e.TokenID, e.Reason)
}

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
