// Package mapper converts driver result sets into row maps.
package mapper

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// binaryTypes are driver type names whose []byte values are kept as bytes.
var binaryTypes = []string{"BLOB", "BYTEA", "BINARY", "IMAGE", "RAW"}

// IsBinaryType reports whether a driver type name denotes binary data.
func IsBinaryType(name string) bool {
	name = strings.ToUpper(name)
	for _, t := range binaryTypes {
		if strings.Contains(name, t) {
			return true
		}
	}
	return false
}

// ScanRows reads every row of rows into maps and closes nothing; the caller
// owns rows. Text columns delivered as []byte are converted to string.
func ScanRows(rows *sql.Rows) ([]string, []domain.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get columns: %w", err)
	}

	binary := make([]bool, len(columns))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			binary[i] = IsBinaryType(ct.DatabaseTypeName())
		}
	}

	results := []domain.Row{}
	for rows.Next() {
		values := make(map[string]interface{}, len(columns))
		if err := sqlx.MapScan(rows, values); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[col].([]byte); ok && !binary[i] {
				row[col] = string(b)
			} else {
				row[col] = values[col]
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return columns, results, nil
}

// Merge returns a row holding data plus the extra key/value pairs.
func Merge(data domain.Record, key string, value interface{}) domain.Row {
	row := make(domain.Row, len(data)+1)
	for k, v := range data {
		row[k] = v
	}
	row[key] = value
	return row
}
