package pgsql

import (
	"fmt"
	"strings"
	"time"
)

// whereBuilder accumulates AND-ed conditions with positional ($n) arguments.
// Each condition is a format string with one %s per argument placeholder.
type whereBuilder struct {
	conds []string
	args  []any
}

func newWhereBuilder(firstCond string, firstArgs ...any) *whereBuilder {
	b := &whereBuilder{}
	return b.and(firstCond, firstArgs...)
}

func (b *whereBuilder) and(cond string, args ...any) *whereBuilder {
	placeholders := make([]any, len(args))
	for i, a := range args {
		b.args = append(b.args, a)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, placeholders...))
	return b
}

// keysetBefore adds the (created_at, id) cursor condition for newest-first listings.
func (b *whereBuilder) keysetBefore(createdAtCol, idCol string, createdAt time.Time, id string) *whereBuilder {
	return b.and(fmt.Sprintf("(%s, %s) < (%%s, %%s)", createdAtCol, idCol), createdAt, id)
}

// limit appends a LIMIT argument and returns its placeholder.
func (b *whereBuilder) limit(n int) string {
	b.args = append(b.args, n)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) String() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func (b *whereBuilder) Args() []any {
	return b.args
}
