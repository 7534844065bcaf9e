package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// MaxID returns the largest identifier currently present in the given table,
// or 0 when the table is empty. The result is a display hint only: real
// identifiers are assigned by the database at insert time, so two callers can
// legitimately see the same preview.
func MaxID(db *sql.DB, table, column string) (int64, error) {
	queryBuilder := builder.
		Select(fmt.Sprintf("COALESCE(MAX(%s), 0)", column)).
		From(table)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL query for MaxID on %s: %w", table, err)
	}

	var max int64
	if err := db.QueryRow(sqlStr, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query max %s from %s: %w", column, table, err)
	}
	return max, nil
}
