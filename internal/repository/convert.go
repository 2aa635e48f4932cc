package repository

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/set-night/invoicedash/internal/config"
)

// pgDateToString formats a pgtype.Date as YYYY-MM-DD, or "" when NULL.
func pgDateToString(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(config.DateLayout)
}
