package catalog

import (
	"strings"

	"github.com/teranos/crunch/errors"
)

// ErrDatabaseClosed is returned when the catalog is used after Close.
var ErrDatabaseClosed = errors.New("database is closed")

// ErrAmbiguousID is returned when a run ID prefix matches several runs.
var ErrAmbiguousID = errors.New("ambiguous run id")

// IsDatabaseClosed checks if an error indicates the database connection is
// closed, either as ErrDatabaseClosed or as the raw driver message.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
