// Package sqlbuilder assembles parameterized SELECT statements from optional
// fragments. Placeholder indices are always derived from the builder's
// argument accumulator, so a predicate added behind a condition can never
// shift the numbering of one added later.
package sqlbuilder

import (
	"strconv"
	"strings"
)

// Builder accumulates clause fragments and bound values for one statement.
// Fragments passed to Where and Having use "?" for each bound value; the
// builder rewrites them to "$n" in first-use order. The zero value is not
// usable, call New.
type Builder struct {
	selectCols string
	from       string
	conds      []string
	groupBy    string
	having     string
	orderBy    string
	args       []any
}

func New() *Builder {
	return &Builder{}
}

// Bind registers a value and returns its placeholder, for fragments that
// reference the same parameter more than once (for example a CASE expression
// comparing both team columns against one team id).
func (b *Builder) Bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *Builder) Select(cols string) *Builder {
	b.selectCols = cols
	return b
}

func (b *Builder) From(clause string) *Builder {
	b.from = clause
	return b
}

// Where appends one predicate. Every "?" in frag consumes one value from args
// and becomes the next positional placeholder. Predicates are joined with AND.
func (b *Builder) Where(frag string, args ...any) *Builder {
	b.conds = append(b.conds, b.expand(frag, args))
	return b
}

func (b *Builder) GroupBy(clause string) *Builder {
	b.groupBy = clause
	return b
}

func (b *Builder) Having(frag string, args ...any) *Builder {
	b.having = b.expand(frag, args)
	return b
}

func (b *Builder) OrderBy(clause string) *Builder {
	b.orderBy = clause
	return b
}

// Build renders the statement and returns it with its bound values. The
// returned SQL references placeholders $1..$len(args) exactly once per Bind
// or "?", in the order they were registered.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.selectCols)
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	if b.groupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(b.groupBy)
	}
	if b.having != "" {
		sb.WriteString(" HAVING ")
		sb.WriteString(b.having)
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	return sb.String(), b.args
}

func (b *Builder) expand(frag string, args []any) string {
	for _, a := range args {
		b.args = append(b.args, a)
		frag = strings.Replace(frag, "?", "$"+strconv.Itoa(len(b.args)), 1)
	}
	return frag
}
