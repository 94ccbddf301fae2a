package v3core

import (
	"fmt"
	"regexp"
	"strings"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SelectQuery describes a newest-first read over one table
type SelectQuery struct {
	Table   string
	Columns []string // empty selects every column
	Limit   int      // 0 means no limit
}

// Build renders the SQL. Identifiers are validated rather than escaped.
func (q SelectQuery) Build() (string, error) {
	if !identifier.MatchString(q.Table) {
		return "", fmt.Errorf("invalid table name: %q", q.Table)
	}

	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, 0, len(q.Columns)+1)
		quoted = append(quoted, `"time"`)
		for _, c := range q.Columns {
			if !identifier.MatchString(c) {
				return "", fmt.Errorf("invalid column name: %q", c)
			}
			quoted = append(quoted, `"`+c+`"`)
		}
		cols = strings.Join(quoted, ", ")
	}

	sql := fmt.Sprintf(`SELECT %s FROM "%s" ORDER BY "time" DESC`, cols, q.Table)
	if q.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return sql, nil
}
