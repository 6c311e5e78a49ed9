package db

import (
	"strconv"
	"strings"
)

// dialect captures the few places sqlite and postgres SQL differ
type dialect struct {
	name string
	// positional marks placeholders as $1, $2 instead of ?
	positional bool
	// contains is the substring function: contains(haystack, needle) > 0
	contains string
}

func dialectFor(driver string) dialect {
	if driver == DriverPostgres {
		return dialect{name: DriverPostgres, positional: true, contains: "strpos"}
	}
	return dialect{name: DriverSQLite, contains: "instr"}
}

// rebind rewrites ? placeholders for the dialect. Queries in this package
// never carry a literal ? inside string constants.
func (d dialect) rebind(query string) string {
	if !d.positional {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// containsExpr matches needle as a case-sensitive substring of column
func (d dialect) containsExpr(column string) string {
	return d.contains + "(COALESCE(" + column + ", ''), ?) > 0"
}
