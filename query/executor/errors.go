package executor

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErDupEntry is the server error number for a duplicate-key violation
const ErDupEntry = 1062

// ErrDuplicateEntry matches any *DuplicateEntryError via errors.Is
var ErrDuplicateEntry = errors.New("duplicate entry")

var duplicateEntryPattern = regexp.MustCompile(`Duplicate entry '(.*)' for key '(.*)'`)

// QueryError is a failed statement. Code is the server error number, or 0
// when the failure did not come from the server (cancellation, broken connection).
type QueryError struct {
	Query   string
	Code    int
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Code == 0 {
		return "query failed: " + e.Message
	}
	return fmt.Sprintf("query failed (%d): %s", e.Code, e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// SessionLost reports whether the failure took the server session down with
// it. A cancelled or timed out statement makes the driver close the network
// connection, and later statements on it fail with a bad-connection error.
// The Connection cannot recover either way and must be reopened.
func (e *QueryError) SessionLost() bool {
	if e.Code != 0 {
		return false
	}
	return errors.Is(e.Err, context.DeadlineExceeded) ||
		errors.Is(e.Err, context.Canceled) ||
		errors.Is(e.Err, driver.ErrBadConn) ||
		errors.Is(e.Err, sql.ErrConnDone) ||
		errors.Is(e.Err, mysql.ErrInvalidConn)
}

// DuplicateEntryError is a QueryError for a unique-key violation.
// Entry is the conflicting value and Key the violated index as reported by
// the server.
type DuplicateEntryError struct {
	QueryError
	Entry string
	Key   string
}

// Index returns Key without the "table." prefix MySQL 8.0.19+ adds
func (e *DuplicateEntryError) Index() string {
	if i := strings.LastIndexByte(e.Key, '.'); i >= 0 {
		return e.Key[i+1:]
	}
	return e.Key
}

// Is reports ErrDuplicateEntry as a match
func (e *DuplicateEntryError) Is(target error) bool {
	return target == ErrDuplicateEntry
}

// As lets errors.As find the embedded *QueryError
func (e *DuplicateEntryError) As(target any) bool {
	if qe, ok := target.(**QueryError); ok {
		*qe = &e.QueryError
		return true
	}
	return false
}

// Classify wraps err into a *QueryError or *DuplicateEntryError carrying query.
// It returns nil for a nil err and leaves already classified errors untouched.
func Classify(query string, err error) error {
	if err == nil {
		return nil
	}

	var dupErr *DuplicateEntryError
	if errors.As(err, &dupErr) {
		return err
	}
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return err
	}

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return &QueryError{Query: query, Message: err.Error(), Err: err}
	}

	base := QueryError{
		Query:   query,
		Code:    int(myErr.Number),
		Message: myErr.Message,
		Err:     err,
	}
	if myErr.Number != ErDupEntry {
		return &base
	}

	dup := &DuplicateEntryError{QueryError: base}
	if m := duplicateEntryPattern.FindStringSubmatch(myErr.Message); m != nil {
		dup.Entry, dup.Key = m[1], m[2]
	}
	return dup
}
