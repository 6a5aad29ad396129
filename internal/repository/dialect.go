package repository

import (
	"strconv"
	"strings"

	"portfolio_cms/internal/repository/db"
)

// placeholderRebinder rewrites "?" placeholders for the target driver.
// Queries are written once in sqlite form; postgres wants $1, $2, ...
type placeholderRebinder func(query string) string

func rebinderFor(driver string) placeholderRebinder {
	if driver != db.DriverPostgres {
		return func(q string) string { return q }
	}
	return toDollarPlaceholders
}

func toDollarPlaceholders(query string) string {
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
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
