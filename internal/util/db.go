package util

import (
	"sort"

	"github.com/uptrace/bun"
)

// ApplyFieldUpdates applies map fields to a Bun UpdateQuery safely.
// Keys are applied in sorted order so generated SQL is deterministic.
func ApplyFieldUpdates(q *bun.UpdateQuery, fields map[string]any) *bun.UpdateQuery {
	keys := make([]string, 0, len(fields))
	for field := range fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	for _, field := range keys {
		q = q.Set(field+" = ?", fields[field])
	}
	return q
}
