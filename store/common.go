package store

import (
	"database/sql"
	"strings"

	"fashionhub/common"
)

// FormatError returns a common.Error with the proper code for raw database
// errors. sqlite reports constraint violations as plain errors, so the
// mapping keys off the message.
func FormatError(err error) error {
	if err == nil {
		return nil
	}

	switch err {
	case sql.ErrNoRows:
		return common.Errorf(common.NotFound, "data not found")
	default:
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return common.Errorf(common.Conflict, "data already exists")
		}
	}
	return common.Errorf(common.Internal, "database error: %v", err)
}
