package sqlite

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/anhofmann/kith/pkg/types"
)

// repeatVars builds the placeholder list for a membership predicate:
// repeatVars(3) is "?,?,?". Returns ErrEmptyIDList for count 0; callers must
// short-circuit the empty-id-list case to an empty result instead.
func repeatVars(count int) (string, error) {
	if count < 1 {
		return "", types.ErrEmptyIDList
	}
	return strings.TrimSuffix(strings.Repeat("?,", count), ","), nil
}

// selectBuilder is the squirrel builder used for filtered list and search
// queries. SQLite uses question-mark placeholders, squirrel's default.
var selectBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// containsFold builds a case-insensitive substring predicate on a column.
func containsFold(column, needle string) sq.Sqlizer {
	return sq.Like{"LOWER(" + column + ")": "%" + strings.ToLower(needle) + "%"}
}

// equalsFold builds a case-insensitive exact-match predicate on a column.
func equalsFold(column, value string) sq.Sqlizer {
	return sq.Expr("LOWER("+column+") = LOWER(?)", value)
}

// int64Args converts ids to query arguments for use with repeatVars.
func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
